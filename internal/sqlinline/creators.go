package sqlinline

const QGetCreatorByUserID = `--sql 2c81f5a7-64d9-4b30-97e2-f04a8d15c6b9
SELECT id, user_id, name, username, bio, avatar_url, verified, created_at
FROM creators
WHERE user_id = $1;
`

const QUpsertCreator = `--sql 86e3d0b4-7a29-4c58-91f6-5d2c74a8e013
INSERT INTO creators (id, user_id, name, username, bio, avatar_url, verified)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
RETURNING id, created_at;
`
