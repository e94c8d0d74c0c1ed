package sqlinline

const QInsertEscrowAccount = `--sql 8b9c0d1e-2f3a-4456-b123-456789012345
insert into escrow_accounts(id, campaign_id, balance_int, created_at)
values (gen_random_uuid(), $1::uuid, 0, now());
`

const QSelectEscrowByCampaign = `--sql 9c0d1e2f-3a4b-4567-8234-567890123456
select id, campaign_id, balance_int, created_at
from escrow_accounts
where campaign_id = $1::uuid;
`

const QCreditEscrow = `--sql 0d1e2f3a-4b5c-4678-9345-678901234567
update escrow_accounts
set balance_int = balance_int + $2::bigint
where campaign_id = $1::uuid;
`

const QDebitEscrow = `--sql 1e2f3a4b-5c6d-4789-a456-789012345678
update escrow_accounts
set balance_int = balance_int - $2::bigint
where campaign_id = $1::uuid;
`
