// Package sqlinline holds every SQL statement the service executes. Each
// constant starts with a "--sql <uuid>" marker so statements can be matched
// against database audit logs; tools/sqllint enforces the convention.
package sqlinline

const QInsertArtifact = `--sql 7f3c2a91-4e8d-4b6a-9c15-d2a8e0f14b37
INSERT INTO content_artifacts (
	id, title, description, script, audio_url, video_url, thumbnail_url,
	duration, category, difficulty, tags, content_source, generation_status,
	ai_prompt, ai_tools_used, generation_metadata, voice_settings,
	visual_style, target_audience, creator_id, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
`

const QUpdateArtifactGeneration = `--sql 5b9e6d04-2f71-49c3-8a2e-6c50b3d7a918
UPDATE content_artifacts
SET generation_status = $2,
    audio_url = $3,
    video_url = $4,
    thumbnail_url = $5,
    duration = $6,
    ai_tools_used = $7,
    generation_metadata = $8,
    voice_settings = $9,
    updated_at = $10
WHERE id = $1;
`

const QMarkArtifactFailed = `--sql c1d84f26-9a05-4e7b-b3f8-0e92a6c45d71
UPDATE content_artifacts
SET generation_status = $2,
    generation_metadata = generation_metadata || jsonb_build_object('failure_reason', $3::text),
    updated_at = now()
WHERE id = $1;
`

const QCompleteUpload = `--sql 6b14e8d0-3f57-4a92-bc86-291d7e05fa43
UPDATE content_artifacts
SET generation_status = $2,
    video_url = $3,
    thumbnail_url = $4,
    generation_metadata = generation_metadata || $5,
    updated_at = $6
WHERE id = $1;
`

const QGetArtifactByID = `--sql 3a60b7e9-8c42-4d15-a9f0-715d2e84c6b3
SELECT id, title, description, script, audio_url, video_url, thumbnail_url,
       duration, category, difficulty, tags, content_source, generation_status,
       ai_prompt, ai_tools_used, generation_metadata, voice_settings,
       visual_style, target_audience, creator_id, created_at, updated_at
FROM content_artifacts
WHERE id = $1;
`

const QListAIGeneratedArtifacts = `--sql e57d1c38-6b94-40af-92e7-48c0f5a2d619
SELECT id, title, description, script, audio_url, video_url, thumbnail_url,
       duration, category, difficulty, tags, content_source, generation_status,
       ai_prompt, ai_tools_used, generation_metadata, voice_settings,
       visual_style, target_audience, creator_id, created_at, updated_at
FROM content_artifacts
WHERE creator_id = $1 AND content_source = $2
ORDER BY created_at DESC
LIMIT $3;
`

const QArtifactCounts = `--sql 9f28a4d6-1e73-4c50-b8a9-37d6e01fc254
SELECT count(*),
       count(*) FILTER (WHERE content_source = $2),
       count(*) FILTER (WHERE generation_status = $3),
       count(*) FILTER (WHERE generation_status = $4)
FROM content_artifacts
WHERE creator_id = $1;
`

const QArtifactBreakdown = `--sql 4d7b90e2-53c8-4f16-ae04-b19f68d3c725
SELECT category, difficulty, count(*)
FROM content_artifacts
WHERE creator_id = $1 AND content_source = $2
GROUP BY category, difficulty;
`
