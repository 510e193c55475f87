package sqlstore

import (
	"database/sql"
	"time"

	"github.com/maelvns/featherpost-be/internal/models"
)

// Messages are read with their owner embedded. A LEFT JOIN keeps messages
// whose owner has already been deleted readable (User stays nil) until the
// janitor sweeps them.
const messageQuery = `
	SELECT m.id, m.text, m.date,
	       u.id, u.login, u.email, u.password_hash, u.avatar, u.cover_picture
	FROM messages m
	LEFT JOIN users u ON u.id = m.user_id`

func scanMessage(row interface{ Scan(...any) error }) (*models.Message, error) {
	var m models.Message
	var date int64
	var uID sql.NullInt64
	var login, email, hash, avatar, cover sql.NullString
	err := row.Scan(&m.ID, &m.Text, &date, &uID, &login, &email, &hash, &avatar, &cover)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	m.Date = time.Unix(date, 0).UTC()
	if uID.Valid {
		m.User = &models.User{
			ID:           uID.Int64,
			Login:        login.String,
			Email:        email.String,
			PasswordHash: hash.String,
			Avatar:       avatar.String,
			CoverPicture: cover.String,
		}
	}
	return &m, nil
}

func (s *SQLStore) GetMessage(id int64) (*models.Message, error) {
	return scanMessage(s.db.QueryRow(messageQuery+" WHERE m.id = ?", id))
}

func (s *SQLStore) ListMessagesByOwner(ownerID int64) ([]models.Message, error) {
	rows, err := s.db.Query(messageQuery+" WHERE m.user_id = ? ORDER BY m.id", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *m)
	}
	return messages, rows.Err()
}

// InsertMessage upserts; a zero id means the store allocates one.
func (s *SQLStore) InsertMessage(m *models.Message) error {
	if m.User == nil {
		return errMessageWithoutOwner
	}
	if m.ID == 0 {
		res, err := s.db.Exec(
			"INSERT INTO messages (text, date, user_id) VALUES (?, ?, ?)",
			m.Text, m.Date.Unix(), m.User.ID,
		)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		m.ID = id
		return nil
	}

	_, err := s.db.Exec(`
		INSERT INTO messages (id, text, date, user_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			date = excluded.date,
			user_id = excluded.user_id`,
		m.ID, m.Text, m.Date.Unix(), m.User.ID,
	)
	return err
}

func (s *SQLStore) DeleteMessage(id int64) error {
	_, err := s.db.Exec("DELETE FROM messages WHERE id = ?", id)
	return err
}

func (s *SQLStore) DeleteMessagesByOwner(ownerID int64) error {
	_, err := s.db.Exec("DELETE FROM messages WHERE user_id = ?", ownerID)
	return err
}

func (s *SQLStore) DeleteOrphanMessages() (int64, error) {
	res, err := s.db.Exec("DELETE FROM messages WHERE user_id NOT IN (SELECT id FROM users)")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLStore) CountMessages() (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n)
	return n, err
}
