package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"                   // Postgres driver
	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	"github.com/wadjakorntonsri/biolink/pkg/core/domain"
	"github.com/wadjakorntonsri/biolink/pkg/ports"
	_ "modernc.org/sqlite" // Local SQLite driver
)

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

const (
	maxOpenConnections     = 5
	maxIdleConnections     = 2
	connectionsMaxIdleTime = 2 * time.Minute
	connectionsLifetime    = 30 * time.Minute
	pingTimeout            = 5 * time.Second
)

const (
	pgErrCodeUniqueViolation = "23505"
	pgErrCodeNoDataFound     = "P0002"
)

// sqliteTimeLayout is what strftime understands
const sqliteTimeLayout = "2006-01-02 15:04:05"

// Repository implements ports.Store over database/sql. Queries are written
// with ? placeholders and rebound for Postgres.
type Repository struct {
	db      *sql.DB
	dialect dialect
}

// New opens the database named by dbURL, pings it and applies the schema.
// postgres:// and postgresql:// use pgx, libsql:// and wss:// use libSQL,
// anything else is a local SQLite DSN.
func New(ctx context.Context, dbURL string) (*Repository, error) {
	driverName, d := driverFor(dbURL)

	dsn := dbURL
	if driverName == "sqlite" {
		dsn = withForeignKeys(dbURL)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driverName == "sqlite" {
		// single connection: no SQLITE_BUSY or shared-cache table locks
		db.SetMaxOpenConns(1)
	}
	if d == dialectPostgres {
		db.SetMaxOpenConns(maxOpenConnections)
		db.SetMaxIdleConns(maxIdleConnections)
		db.SetConnMaxIdleTime(connectionsMaxIdleTime)
		db.SetConnMaxLifetime(connectionsLifetime)
	}

	ctxPing, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(ctxPing); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if driverName == "libsql" {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	r := &Repository{db: db, dialect: d}
	if err := r.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return r, nil
}

func driverFor(dbURL string) (string, dialect) {
	switch {
	case strings.HasPrefix(dbURL, "postgres://"), strings.HasPrefix(dbURL, "postgresql://"):
		return "pgx", dialectPostgres
	case strings.Contains(dbURL, "libsql://"), strings.Contains(dbURL, "wss://"):
		return "libsql", dialectSQLite
	default:
		return "sqlite", dialectSQLite
	}
}

// withForeignKeys makes modernc run the pragma on every new connection.
func withForeignKeys(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) migrate(ctx context.Context) error {
	statements := sqliteSchema
	if r.dialect == dialectPostgres {
		statements = postgresSchema
	}
	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// q rewrites ? placeholders to $1..$n for Postgres.
func (r *Repository) q(query string) string {
	if r.dialect != dialectPostgres {
		return query
	}
	return rebind(query)
}

func rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrCodeUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func mustAffect(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// --- Profiles ---

const profileColumns = `id, username, display_name, bio, avatar_url, theme, is_public, created_at, updated_at`

func scanProfile(s scanner) (*domain.Profile, error) {
	var p domain.Profile
	err := s.Scan(&p.ID, &p.Username, &p.DisplayName, &p.Bio, &p.AvatarURL, &p.Theme, &p.IsPublic, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) CreateProfile(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO profiles (` + profileColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, r.q(query),
		p.ID, p.Username, p.DisplayName, p.Bio, p.AvatarURL, p.Theme, p.IsPublic, p.CreatedAt, p.UpdatedAt)
	if err != nil && isUniqueViolation(err) {
		return domain.ErrUsernameTaken
	}
	return err
}

func (r *Repository) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ?`
	return scanProfile(r.db.QueryRowContext(ctx, r.q(query), id))
}

func (r *Repository) GetProfileByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE username = ?`
	return scanProfile(r.db.QueryRowContext(ctx, r.q(query), username))
}

func (r *Repository) UpdateProfile(ctx context.Context, p *domain.Profile) error {
	query := `UPDATE profiles SET username = ?, display_name = ?, bio = ?, avatar_url = ?, theme = ?, is_public = ?, updated_at = ?
			  WHERE id = ?`
	res, err := r.db.ExecContext(ctx, r.q(query),
		p.Username, p.DisplayName, p.Bio, p.AvatarURL, p.Theme, p.IsPublic, p.UpdatedAt, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return err
	}
	return mustAffect(res, domain.ErrProfileNotFound)
}

// --- Links ---

const linkColumns = `id, user_id, collection_id, title, url, description, icon, position, is_active, click_count, created_at, updated_at`

func scanLink(s scanner) (*domain.Link, error) {
	var l domain.Link
	var collectionID sql.NullString
	err := s.Scan(&l.ID, &l.UserID, &collectionID, &l.Title, &l.URL, &l.Description, &l.Icon,
		&l.Position, &l.IsActive, &l.ClickCount, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if collectionID.Valid {
		l.CollectionID = &collectionID.String
	}
	return &l, nil
}

func (r *Repository) CreateLink(ctx context.Context, l *domain.Link) error {
	query := `INSERT INTO links (` + linkColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, r.q(query),
		l.ID, l.UserID, l.CollectionID, l.Title, l.URL, l.Description, l.Icon,
		l.Position, l.IsActive, l.ClickCount, l.CreatedAt, l.UpdatedAt)
	return err
}

func (r *Repository) GetLink(ctx context.Context, userID, id string) (*domain.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE id = ? AND user_id = ?`
	link, err := scanLink(r.db.QueryRowContext(ctx, r.q(query), id, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return link, err
}

func (r *Repository) UpdateLink(ctx context.Context, l *domain.Link) error {
	query := `UPDATE links SET title = ?, url = ?, description = ?, icon = ?, is_active = ?, updated_at = ?
			  WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, r.q(query),
		l.Title, l.URL, l.Description, l.Icon, l.IsActive, l.UpdatedAt, l.ID, l.UserID)
	if err != nil {
		return err
	}
	return mustAffect(res, domain.ErrLinkNotFound)
}

func (r *Repository) DeleteLink(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, r.q(`DELETE FROM links WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return err
	}
	return mustAffect(res, domain.ErrLinkNotFound)
}

func (r *Repository) ListLinks(ctx context.Context, userID string, filters map[string]interface{}) ([]domain.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE user_id = ?`
	args := []interface{}{userID}

	if active, ok := filters["active"].(bool); ok && active {
		query += " AND is_active = ?"
		args = append(args, true)
	}

	query += " ORDER BY position ASC, created_at ASC"

	rows, err := r.db.QueryContext(ctx, r.q(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []domain.Link
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *l)
	}
	return links, rows.Err()
}

func (r *Repository) NextLinkPosition(ctx context.Context, userID string, bucket domain.BucketID) (int, error) {
	query := `SELECT COALESCE(MAX(position) + 1, 0) FROM links WHERE user_id = ?`
	args := []interface{}{userID}
	if bucket == domain.Ungrouped {
		query += " AND collection_id IS NULL"
	} else {
		query += " AND collection_id = ?"
		args = append(args, string(bucket))
	}

	var next int
	err := r.db.QueryRowContext(ctx, r.q(query), args...).Scan(&next)
	return next, err
}

func (r *Repository) UpdateLinkPosition(ctx context.Context, userID, id string, position int) error {
	query := `UPDATE links SET position = ? WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, r.q(query), position, id, userID)
	if err != nil {
		return err
	}
	return mustAffect(res, domain.ErrLinkNotFound)
}

func (r *Repository) SetLinkCollection(ctx context.Context, userID, id string, collectionID *string) error {
	query := `UPDATE links SET collection_id = ?, updated_at = ? WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, r.q(query), collectionID, time.Now(), id, userID)
	if err != nil {
		return err
	}
	return mustAffect(res, domain.ErrLinkNotFound)
}

func (r *Repository) UngroupLinks(ctx context.Context, userID, collectionID string) (int64, error) {
	query := `UPDATE links SET collection_id = NULL WHERE collection_id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, r.q(query), collectionID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// --- Collections ---

const collectionColumns = `id, user_id, title, description, position, is_active, created_at, updated_at`

func scanCollection(s scanner) (*domain.Collection, error) {
	var c domain.Collection
	var description sql.NullString
	if err := s.Scan(&c.ID, &c.UserID, &c.Title, &description, &c.Position, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		c.Description = &description.String
	}
	return &c, nil
}

func (r *Repository) CreateCollection(ctx context.Context, c *domain.Collection) error {
	query := `INSERT INTO collections (` + collectionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, r.q(query),
		c.ID, c.UserID, c.Title, c.Description, c.Position, c.IsActive, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *Repository) GetCollection(ctx context.Context, userID, id string) (*domain.Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections WHERE id = ? AND user_id = ?`
	c, err := scanCollection(r.db.QueryRowContext(ctx, r.q(query), id, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (r *Repository) UpdateCollection(ctx context.Context, c *domain.Collection) error {
	query := `UPDATE collections SET title = ?, description = ?, is_active = ?, updated_at = ? WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, r.q(query), c.Title, c.Description, c.IsActive, c.UpdatedAt, c.ID, c.UserID)
	if err != nil {
		return err
	}
	return mustAffect(res, domain.ErrCollectionNotFound)
}

func (r *Repository) DeleteCollection(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, r.q(`DELETE FROM collections WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return err
	}
	return mustAffect(res, domain.ErrCollectionNotFound)
}

func (r *Repository) ListCollections(ctx context.Context, userID string, filters map[string]interface{}) ([]domain.Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections WHERE user_id = ?`
	args := []interface{}{userID}

	if active, ok := filters["active"].(bool); ok && active {
		query += " AND is_active = ?"
		args = append(args, true)
	}

	query += " ORDER BY position ASC, created_at ASC"

	rows, err := r.db.QueryContext(ctx, r.q(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collections []domain.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		collections = append(collections, *c)
	}
	return collections, rows.Err()
}

func (r *Repository) NextCollectionPosition(ctx context.Context, userID string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx, r.q(`SELECT COALESCE(MAX(position) + 1, 0) FROM collections WHERE user_id = ?`), userID).Scan(&next)
	return next, err
}

func (r *Repository) UpdateCollectionPosition(ctx context.Context, userID, id string, position int) error {
	query := `UPDATE collections SET position = ? WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, r.q(query), position, id, userID)
	if err != nil {
		return err
	}
	return mustAffect(res, domain.ErrCollectionNotFound)
}

// --- Clicks ---

func (r *Repository) IncrementLinkClicks(ctx context.Context, click *domain.LinkClick) error {
	if r.dialect == dialectPostgres {
		_, err := r.db.ExecContext(ctx, r.q(`SELECT increment_link_clicks(?, ?, ?, ?)`),
			click.LinkID, click.IPAddress, click.UserAgent, click.Referrer)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeNoDataFound {
			return domain.ErrLinkNotFound
		}
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE links SET click_count = click_count + 1 WHERE id = ?`, click.LinkID)
	if err != nil {
		return err
	}
	if err := mustAffect(res, domain.ErrLinkNotFound); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO link_clicks (id, link_id, clicked_at, ip_address, user_agent, referrer) VALUES (?, ?, ?, ?, ?, ?)`,
		click.ID, click.LinkID, click.ClickedAt.UTC().Format(sqliteTimeLayout), click.IPAddress, click.UserAgent, click.Referrer)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) GetLinkStats(ctx context.Context, linkID string) (*domain.LinkStats, error) {
	stats := &domain.LinkStats{
		Referrers:   make(map[string]int64),
		DailyClicks: []domain.DailyClick{},
	}

	err := r.db.QueryRowContext(ctx, r.q(`SELECT COUNT(*) FROM link_clicks WHERE link_id = ?`), linkID).Scan(&stats.TotalClicks)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, r.q(`SELECT referrer, COUNT(*) AS c FROM link_clicks WHERE link_id = ? GROUP BY referrer ORDER BY c DESC LIMIT 10`), linkID)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var ref string
		var count int64
		if err := rows.Scan(&ref, &count); err != nil {
			rows.Close()
			return nil, err
		}
		if ref == "" {
			ref = "Direct"
		}
		stats.Referrers[ref] += count
	}
	rows.Close()

	day := `strftime('%Y-%m-%d', clicked_at)`
	if r.dialect == dialectPostgres {
		day = `to_char(clicked_at, 'YYYY-MM-DD')`
	}
	// Last 30 days with clicks
	rows2, err := r.db.QueryContext(ctx, r.q(`
		SELECT `+day+` AS day, COUNT(*)
		FROM link_clicks
		WHERE link_id = ?
		GROUP BY day
		ORDER BY day DESC
		LIMIT 30`), linkID)
	if err != nil {
		return nil, err
	}
	defer rows2.Close()
	for rows2.Next() {
		var dc domain.DailyClick
		if err := rows2.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, err
		}
		stats.DailyClicks = append(stats.DailyClicks, dc)
	}

	return stats, rows2.Err()
}

// Ensure interface compliance
var _ ports.Store = (*Repository)(nil)
