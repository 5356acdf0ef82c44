package database

import (
	"database/sql"
	"log"
)

// RunMigrations applies the schema idempotently at startup. Every statement
// is safe to re-run against an existing database.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			name VARCHAR(100) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS classes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			teacher_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			type VARCHAR(10) NOT NULL CHECK (type IN ('1:1', 'group')),
			subject VARCHAR(100) NOT NULL,
			duration VARCHAR(50) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			teacher_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(100) NOT NULL,
			grade VARCHAR(50) NOT NULL,
			parent_name VARCHAR(100) NOT NULL,
			parent_phone VARCHAR(30) NOT NULL,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS student_classes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			class_id UUID NOT NULL REFERENCES classes(id) ON DELETE CASCADE,
			payment_type VARCHAR(20) NOT NULL CHECK (payment_type IN ('monthly', 'quarterly')),
			payment_day INTEGER NOT NULL CHECK (payment_day BETWEEN 1 AND 31),
			robotics_option BOOLEAN NOT NULL DEFAULT FALSE,
			robotics_day VARCHAR(10) CHECK (robotics_day IN ('wed', 'sat')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (student_id, class_id)
		)`,

		`CREATE TABLE IF NOT EXISTS schedules (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			teacher_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			class_id UUID NOT NULL REFERENCES classes(id) ON DELETE CASCADE,
			day_of_week INTEGER NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
			start_time VARCHAR(10) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'active'
				CHECK (status IN ('active', 'planned', 'completed', 'makeup')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS attendance (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			schedule_id UUID NOT NULL REFERENCES schedules(id) ON DELETE CASCADE,
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			status VARCHAR(20) NOT NULL
				CHECK (status IN ('present', 'absent', 'makeup_needed', 'makeup_completed')),
			makeup_date DATE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (schedule_id, student_id, date)
		)`,

		`CREATE TABLE IF NOT EXISTS student_attendance_progress (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID UNIQUE NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			teacher_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			current_week INTEGER NOT NULL DEFAULT 0 CHECK (current_week >= 0),
			total_weeks INTEGER NOT NULL,
			course_type VARCHAR(10) NOT NULL CHECK (course_type IN ('1month', '3month')),
			last_attendance_date DATE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (current_week <= total_weeks)
		)`,

		`CREATE TABLE IF NOT EXISTS feedback_templates (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			teacher_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (teacher_id, name)
		)`,

		`CREATE TABLE IF NOT EXISTS feedback_history (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			teacher_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			student_name VARCHAR(100) NOT NULL,
			class_name VARCHAR(255) NOT NULL,
			feedback_content TEXT NOT NULL,
			template_used VARCHAR(255),
			token_usage INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_students_teacher ON students(teacher_id)`,
		`CREATE INDEX IF NOT EXISTS idx_student_classes_student ON student_classes(student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_schedules_teacher_day ON schedules(teacher_id, day_of_week)`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_schedule_date ON attendance(schedule_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_progress_teacher ON student_attendance_progress(teacher_id)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_history_teacher ON feedback_history(teacher_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed")
	return nil
}
