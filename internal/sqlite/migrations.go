package sqlite

func (s Storage) RunMigrations() error {
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS reminders (
		calendar_id VARCHAR NOT NULL,
		event_id VARCHAR NOT NULL,
		starts_at VARCHAR NOT NULL,
		summary VARCHAR NOT NULL DEFAULT '',
		message_id VARCHAR NOT NULL DEFAULT '',
		sent_at VARCHAR NOT NULL,
		PRIMARY KEY (calendar_id, event_id, starts_at)
	)`,
}
