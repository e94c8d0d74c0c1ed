package sqlinline

const QInsertPledge = `--sql 2f3a4b5c-6d7e-4890-b567-890123456789
insert into pledges(id, campaign_id, donor_id, amount_int, status, donor_country, created_at)
values (gen_random_uuid(), $1::uuid, $2::uuid, $3::bigint, 'PENDING', $4::text, now())
returning id, created_at;
`

const QListPendingPledges = `--sql 3a4b5c6d-7e8f-4901-8678-901234567890
select id, campaign_id, donor_id, amount_int, status, donor_country, created_at
from pledges
where campaign_id = $1::uuid and status = 'PENDING'
order by created_at;
`

const QMarkPledgeRefunded = `--sql 4b5c6d7e-8f9a-4012-9789-012345678901
update pledges
set status = 'REFUNDED'
where id = $1::uuid and status = 'PENDING';
`
