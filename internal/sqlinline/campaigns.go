package sqlinline

const QInsertCampaign = `--sql 1a2b3c4d-5e6f-4789-8abc-def012345678
insert into campaigns(id, owner_id, title, description, goal_amount_int, funded_amount_int, end_date, status, created_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::text, $4::bigint, 0, $5::timestamptz, 'ACTIVE', now())
returning id, created_at;
`

const QSelectCampaign = `--sql 2b3c4d5e-6f7a-4890-9bcd-ef0123456789
select id, owner_id, title, description, goal_amount_int, funded_amount_int, end_date, status, created_at
from campaigns
where id = $1::uuid;
`

const QSelectCampaignForUpdate = `--sql 3c4d5e6f-7a8b-4901-acde-f01234567890
select id, owner_id, title, description, goal_amount_int, funded_amount_int, end_date, status, created_at
from campaigns
where id = $1::uuid
for update;
`

const QListCampaigns = `--sql 4d5e6f7a-8b9c-4012-bdef-012345678901
select id, owner_id, title, description, goal_amount_int, funded_amount_int, end_date, status, created_at
from campaigns
order by created_at desc
limit $1::int;
`

const QRecordFunding = `--sql 5e6f7a8b-9c0d-4123-8ef0-123456789012
update campaigns
set funded_amount_int = funded_amount_int + $2::bigint,
    status = case when funded_amount_int + $2::bigint >= goal_amount_int then 'SUCCESSFUL' else status end
where id = $1::uuid and status = 'ACTIVE'
returning id, owner_id, title, description, goal_amount_int, funded_amount_int, end_date, status, created_at;
`

const QListExpiredActiveCampaigns = `--sql 6f7a8b9c-0d1e-4234-9f01-234567890123
select id
from campaigns
where status = 'ACTIVE' and end_date < $1::timestamptz
order by end_date;
`

const QSettleCampaign = `--sql 7a8b9c0d-1e2f-4345-a012-345678901234
update campaigns
set status = $2::text
where id = $1::uuid and status = 'ACTIVE';
`
