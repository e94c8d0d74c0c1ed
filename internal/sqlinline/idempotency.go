package sqlinline

// QBeginIdempotency claims the key when it is free, or reclaims it when a
// prior PROCESSING claim's lease has lapsed. Zero rows affected means the key
// is held: either completed (cached response available) or still in flight.
const QBeginIdempotency = `--sql 5c6d7e8f-9a0b-4123-a890-123456789012
insert into idempotency_keys(key, user_id, status, lease_expires_at, created_at, updated_at)
values ($1::text, $2::uuid, 'PROCESSING', $3::timestamptz, now(), now())
on conflict (key) do update
set lease_expires_at = excluded.lease_expires_at, updated_at = now()
where idempotency_keys.status = 'PROCESSING' and idempotency_keys.lease_expires_at < now();
`

const QSelectIdempotencyKey = `--sql 6d7e8f9a-0b1c-4234-b901-234567890123
select key, user_id, status, response, lease_expires_at, created_at, updated_at
from idempotency_keys
where key = $1::text;
`

const QCompleteIdempotencyKey = `--sql 7e8f9a0b-1c2d-4345-8012-345678901234
update idempotency_keys
set status = 'COMPLETED', response = $2::jsonb, updated_at = now()
where key = $1::text;
`
