package sqlstore

import (
	"database/sql"
	"fmt"

	"github.com/maelvns/featherpost-be/internal/models"
	"github.com/maelvns/featherpost-be/internal/store"
)

const userColumns = "id, login, email, password_hash, avatar, cover_picture"

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Login, &u.Email, &u.PasswordHash, &u.Avatar, &u.CoverPicture)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// AllocateID reserves a fresh user id from the allocation sequence.
func (s *SQLStore) AllocateID() (int64, error) {
	res, err := s.db.Exec("INSERT INTO user_ids DEFAULT VALUES")
	if err != nil {
		return 0, fmt.Errorf("allocate user id: %w", err)
	}
	return res.LastInsertId()
}

func (s *SQLStore) GetUser(id int64) (*models.User, error) {
	return scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id))
}

func (s *SQLStore) GetUserByLogin(login string) (*models.User, error) {
	return scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE login = ?", login))
}

func (s *SQLStore) GetUserByEmail(email string) (*models.User, error) {
	return scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", email))
}

// ListUsers returns users in id order, one keyset page at a time.
func (s *SQLStore) ListUsers(limit int, cursor string) (*store.UserPage, error) {
	n := pageSize(limit)
	rows, err := s.db.Query(
		"SELECT "+userColumns+" FROM users WHERE id > ? ORDER BY id LIMIT ?",
		decodeCursor(cursor), n+1,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUserPage(rows, n)
}

// collectUserPage reads up to n+1 rows; the extra row only signals that a
// next page exists.
func collectUserPage(rows *sql.Rows, n int) (*store.UserPage, error) {
	page := &store.UserPage{Users: []models.User{}}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Login, &u.Email, &u.PasswordHash, &u.Avatar, &u.CoverPicture); err != nil {
			return nil, err
		}
		page.Users = append(page.Users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(page.Users) > n {
		page.Users = page.Users[:n]
		page.Cursor = encodeCursor(page.Users[n-1].ID)
	}
	return page, nil
}

// SaveUser inserts or overwrites the record under u.ID.
func (s *SQLStore) SaveUser(u *models.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (id, login, email, password_hash, avatar, cover_picture)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			login = excluded.login,
			email = excluded.email,
			password_hash = excluded.password_hash,
			avatar = excluded.avatar,
			cover_picture = excluded.cover_picture`,
		u.ID, u.Login, u.Email, u.PasswordHash, u.Avatar, u.CoverPicture,
	)
	return err
}

func (s *SQLStore) DeleteUser(id int64) error {
	_, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	return err
}

func (s *SQLStore) CountUsers() (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}
