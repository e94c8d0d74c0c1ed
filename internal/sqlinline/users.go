package sqlinline

const QInsertUser = `--sql 8f9a0b1c-2d3e-4456-9123-456789012345
insert into users(id, name, email, password_hash, created_at)
values (gen_random_uuid(), $1::text, $2::text, $3::text, now())
on conflict (email) do nothing
returning id, created_at;
`

const QSelectUserByEmail = `--sql 9a0b1c2d-3e4f-4567-a234-567890123456
select id, name, email, password_hash, created_at
from users
where email = $1::text;
`

const QSelectUserByID = `--sql 0b1c2d3e-4f5a-4678-b345-678901234567
select id, name, email, password_hash, created_at
from users
where id = $1::uuid;
`
