package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	createAccount = `INSERT INTO accounts (username, password_hash, role)
    VALUES ($1, $2, $3)
    RETURNING account_id, username, password_hash, role, created_at;`

	findAccountByUsername = `SELECT account_id, username, password_hash, role, created_at
    FROM accounts
    WHERE username = $1;`

	findAccountByID = `SELECT account_id, username, password_hash, role, created_at
    FROM accounts
    WHERE account_id = $1;`

	updateAccountPassword = `UPDATE accounts
    SET password_hash = $2
    WHERE account_id = $1;`

	// findRoleForUpdate locks the target account row for the remainder of
	// the surrounding transaction.
	findRoleForUpdate = `SELECT role
    FROM accounts
    WHERE account_id = $1
    FOR UPDATE;`

	// countOtherAdmins locks every other admin row while counting them, so
	// two concurrent demotions serialize instead of both passing the
	// last-admin check.
	countOtherAdmins = `SELECT count(account_id)
    FROM (SELECT account_id FROM accounts WHERE role = 'admin' AND account_id <> $1 FOR UPDATE) AS other_admins;`

	updateAccountRole = `UPDATE accounts
    SET role = $2
    WHERE account_id = $1;`

	deleteAccount = `DELETE FROM accounts
    WHERE account_id = $1;`

	// seedAdmin never overwrites an existing bootstrap account credential.
	seedAdmin = `INSERT INTO accounts (username, password_hash, role)
    VALUES ($1, $2, 'admin')
    ON CONFLICT (username) DO NOTHING;`

	createPost = `INSERT INTO posts (title, content, author)
    VALUES ($1, $2, $3)
    RETURNING post_id, title, content, author, created_at;`

	findPostByID = `SELECT post_id, title, content, author, created_at
    FROM posts
    WHERE post_id = $1;`

	deletePost = `DELETE FROM posts
    WHERE post_id = $1;`
)

// AccountFilter narrows ListAccounts results. The zero value lists all
// accounts.
type AccountFilter struct {
	// Role limits the listing to accounts with the given role.
	Role string
}

// PostFilter narrows ListPosts results. The zero value lists the whole
// board.
type PostFilter struct {
	// Author limits the listing to posts by the given username.
	Author string
}

// buildListAccountsQuery builds the accounts listing query, ordered by
// identifier so the admin page is stable across reloads.
func buildListAccountsQuery(filter AccountFilter) (string, []any, error) {
	qb := sq.
		Select("account_id", "username", "password_hash", "role", "created_at").
		From("accounts").
		OrderBy("account_id ASC").
		PlaceholderFormat(sq.Dollar)

	if filter.Role != "" {
		qb = qb.Where(sq.Eq{"role": filter.Role})
	}

	return qb.ToSql()
}

// buildListPostsQuery builds the board listing query, newest post first.
func buildListPostsQuery(filter PostFilter) (string, []any, error) {
	qb := sq.
		Select("post_id", "title", "content", "author", "created_at").
		From("posts").
		OrderBy("post_id DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.Author != "" {
		qb = qb.Where(sq.Eq{"author": filter.Author})
	}

	return qb.ToSql()
}
