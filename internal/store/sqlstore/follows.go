package sqlstore

import "github.com/maelvns/featherpost-be/internal/store"

// SetFollow creates or destroys the (follower, followed) edge. Both
// directions of the call are idempotent.
func (s *SQLStore) SetFollow(followerID, followedID int64, followed bool) error {
	if followed {
		_, err := s.db.Exec(
			"INSERT INTO follows (follower_id, followed_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			followerID, followedID,
		)
		return err
	}
	_, err := s.db.Exec(
		"DELETE FROM follows WHERE follower_id = ? AND followed_id = ?",
		followerID, followedID,
	)
	return err
}

func (s *SQLStore) IsFollowing(followerID, followedID int64) (bool, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM follows WHERE follower_id = ? AND followed_id = ?",
		followerID, followedID,
	).Scan(&n)
	return n > 0, err
}

// ListFollowed pages through the users that userID follows.
func (s *SQLStore) ListFollowed(userID int64, limit int, cursor string) (*store.UserPage, error) {
	n := pageSize(limit)
	rows, err := s.db.Query(
		"SELECT "+userColumns+` FROM users
		WHERE id IN (SELECT followed_id FROM follows WHERE follower_id = ?)
		AND id > ? ORDER BY id LIMIT ?`,
		userID, decodeCursor(cursor), n+1,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUserPage(rows, n)
}

// ListFollowers pages through the users following userID.
func (s *SQLStore) ListFollowers(userID int64, limit int, cursor string) (*store.UserPage, error) {
	n := pageSize(limit)
	rows, err := s.db.Query(
		"SELECT "+userColumns+` FROM users
		WHERE id IN (SELECT follower_id FROM follows WHERE followed_id = ?)
		AND id > ? ORDER BY id LIMIT ?`,
		userID, decodeCursor(cursor), n+1,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUserPage(rows, n)
}
