package db

// schemaStatements are applied in order by Migrate. Every statement is idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name       TEXT NOT NULL,
		email      TEXT NOT NULL UNIQUE,
		role       TEXT NOT NULL DEFAULT 'student',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS student_profiles (
		id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id         UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		full_name       TEXT NOT NULL DEFAULT '',
		register_number TEXT NOT NULL DEFAULT '',
		college         TEXT NOT NULL DEFAULT '',
		batch_year      TEXT NOT NULL DEFAULT '',
		semester        TEXT NOT NULL DEFAULT '',
		skills          TEXT NOT NULL DEFAULT '',
		skill_ratings   TEXT NOT NULL DEFAULT '',
		experience      TEXT NOT NULL DEFAULT '',
		interests       TEXT NOT NULL DEFAULT '',
		tech_stack      TEXT NOT NULL DEFAULT '',
		location        TEXT NOT NULL DEFAULT '',
		resume_text     TEXT NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS job_postings (
		id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title            TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		required_skills  TEXT NOT NULL DEFAULT '',
		min_experience   DOUBLE PRECISION,
		posted_by        TEXT NOT NULL DEFAULT '',
		application_link TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS job_recommendations (
		id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		job_id     UUID NOT NULL REFERENCES job_postings(id) ON DELETE CASCADE,
		score      DOUBLE PRECISION NOT NULL,
		reason     TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, job_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_job_recommendations_user
		ON job_recommendations (user_id, score DESC)`,
	`CREATE TABLE IF NOT EXISTS courses (
		id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL DEFAULT '',
		link        TEXT NOT NULL DEFAULT '',
		added_by    TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS course_videos (
		id        UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		course_id UUID REFERENCES courses(id) ON DELETE SET NULL,
		title     TEXT NOT NULL,
		url       TEXT NOT NULL,
		category  TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS job_trends (
		id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		job_role        TEXT NOT NULL,
		industry        TEXT NOT NULL DEFAULT '',
		trending_skills TEXT NOT NULL DEFAULT '',
		year            TEXT NOT NULL DEFAULT '',
		added_by        TEXT NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}
