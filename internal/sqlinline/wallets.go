package sqlinline

const QInsertWallet = `--sql 3f8c1d2a-9b4e-4c7a-8d21-5e6f7a8b9c0d
insert into wallets(id, user_id, balance_int, created_at)
values (gen_random_uuid(), $1::uuid, 0, now())
returning id, user_id, balance_int, created_at;
`

const QSelectWalletByUser = `--sql 7a2b3c4d-5e6f-4a1b-9c8d-0e1f2a3b4c5d
select id, user_id, balance_int, created_at
from wallets
where user_id = $1::uuid;
`

const QSelectWalletByUserForUpdate = `--sql b1c2d3e4-f5a6-4b7c-8d9e-0f1a2b3c4d5e
select id, user_id, balance_int, created_at
from wallets
where user_id = $1::uuid
for update;
`

const QDebitWallet = `--sql c9d8e7f6-a5b4-4c3d-9e2f-1a0b9c8d7e6f
update wallets
set balance_int = balance_int - $2::bigint
where id = $1::uuid and balance_int >= $2::bigint;
`

const QCreditWallet = `--sql d4e5f6a7-b8c9-4d0e-8f1a-2b3c4d5e6f7a
update wallets
set balance_int = balance_int + $2::bigint
where id = $1::uuid;
`

const QInsertWalletTransaction = `--sql e5f6a7b8-c9d0-4e1f-9a2b-3c4d5e6f7a8b
insert into wallet_transactions(id, wallet_id, type, amount_int, status, reference_type, reference_id, created_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::bigint, 'COMPLETED', $4::text, $5::text, now());
`

const QListWalletTransactions = `--sql f6a7b8c9-d0e1-4f2a-8b3c-4d5e6f7a8b9c
select id, wallet_id, type, amount_int, status, reference_type, reference_id, created_at
from wallet_transactions
where wallet_id = $1::uuid
order by created_at desc
limit $2::int;
`
