package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Renu-telugu/user-management-app/internal/users"
)

// List returns every user in storage order.
func (db *DB) List(ctx context.Context) ([]users.User, error) {
	rows, err := db.query(ctx, "list users", `SELECT id, username, email, password FROM user`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []users.User
	for rows.Next() {
		var u users.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Password); err != nil {
			return nil, db.observe("scan user", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, db.observe("list users", err)
	}
	return out, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	var count int
	err := db.queryRow(ctx, `SELECT COUNT(*) FROM user`).Scan(&count)
	if err != nil {
		return 0, db.observe("count users", err)
	}
	return count, nil
}

// Get looks a user up by id, returning users.ErrNotFound on zero rows.
func (db *DB) Get(ctx context.Context, id string) (*users.User, error) {
	u := &users.User{}
	err := db.queryRow(ctx, `SELECT id, username, email, password FROM user WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &u.Email, &u.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, users.ErrNotFound
	}
	if err != nil {
		return nil, db.observe("get user", err)
	}
	return u, nil
}

// Insert stores a new user row.
func (db *DB) Insert(ctx context.Context, user *users.User) error {
	_, err := db.exec(ctx, "insert user",
		`INSERT INTO user (id, username, email, password) VALUES (?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.Password)
	return err
}

// UpdateUsername changes a user's username.
func (db *DB) UpdateUsername(ctx context.Context, id, username string) error {
	_, err := db.exec(ctx, "update username",
		`UPDATE user SET username = ? WHERE id = ?`, username, id)
	return err
}

// Delete removes a user row.
func (db *DB) Delete(ctx context.Context, id string) error {
	_, err := db.exec(ctx, "delete user", `DELETE FROM user WHERE id = ?`, id)
	return err
}
