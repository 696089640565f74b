package sqlstore

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL DEFAULT '',
		bio TEXT NOT NULL DEFAULT '',
		avatar_url TEXT NOT NULL DEFAULT '',
		theme TEXT NOT NULL DEFAULT 'default',
		is_public BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS collections (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		position INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES profiles(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_collections_user_id ON collections(user_id)`,
	`CREATE TABLE IF NOT EXISTS links (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		collection_id TEXT,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		icon TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		click_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES profiles(id) ON DELETE CASCADE,
		FOREIGN KEY(collection_id) REFERENCES collections(id) ON DELETE SET NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_links_user_id ON links(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_links_collection_id ON links(collection_id)`,
	`CREATE TABLE IF NOT EXISTS link_clicks (
		id TEXT PRIMARY KEY,
		link_id TEXT NOT NULL,
		clicked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		ip_address TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT '',
		referrer TEXT NOT NULL DEFAULT '',
		FOREIGN KEY(link_id) REFERENCES links(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_link_clicks_link_id ON link_clicks(link_id)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL DEFAULT '',
		bio TEXT NOT NULL DEFAULT '',
		avatar_url TEXT NOT NULL DEFAULT '',
		theme TEXT NOT NULL DEFAULT 'default',
		is_public BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS collections (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT,
		position INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_collections_user_id ON collections(user_id)`,
	`CREATE TABLE IF NOT EXISTS links (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		collection_id TEXT REFERENCES collections(id) ON DELETE SET NULL,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		icon TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		click_count BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_links_user_id ON links(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_links_collection_id ON links(collection_id)`,
	`CREATE TABLE IF NOT EXISTS link_clicks (
		id TEXT PRIMARY KEY,
		link_id TEXT NOT NULL REFERENCES links(id) ON DELETE CASCADE,
		clicked_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		ip_address TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT '',
		referrer TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_link_clicks_link_id ON link_clicks(link_id)`,
	// Counter bump and click log in one statement-level transaction.
	// SQLSTATE P0002 (no_data_found) signals an unknown link.
	`CREATE OR REPLACE FUNCTION increment_link_clicks(
		link_uuid TEXT,
		ip_addr TEXT,
		user_agent_str TEXT,
		referrer_str TEXT
	) RETURNS VOID AS $$
	BEGIN
		UPDATE links SET click_count = click_count + 1 WHERE id = link_uuid;
		IF NOT FOUND THEN
			RAISE EXCEPTION 'link % not found', link_uuid USING ERRCODE = 'P0002';
		END IF;
		INSERT INTO link_clicks (id, link_id, clicked_at, ip_address, user_agent, referrer)
		VALUES (gen_random_uuid()::text, link_uuid, NOW(), ip_addr, user_agent_str, referrer_str);
	END;
	$$ LANGUAGE plpgsql`,
}
