package db

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sudo-init-do/bloghub/internal/config"
)

var Conn *pgxpool.Pool

// Init connects to Postgres and ensures the schema the handlers rely on.
func Init(cfg config.Config) {
	var err error
	Conn, err = pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	if err = Conn.Ping(context.Background()); err != nil {
		log.Fatalf("Unable to ping database: %v\n", err)
	}

	log.Println("Connected to Postgres successfully")

	ensureUsersTable()
	ensurePostsTable()
	ensurePostLikesTable()
	ensureCommentsTable()
	ensureContactMessagesTable()
}

// ensureUsersTable creates the users table if missing. The unique index on
// lower(email) is what resolves a duplicate-registration race: the second
// concurrent insert fails, the application never locks.
func ensureUsersTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL,
            password TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user','admin')),
            bio TEXT NOT NULL DEFAULT '',
            avatar_url TEXT NOT NULL DEFAULT '/images/default-avatar.png',
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (lower(email));
    `)
	if err != nil {
		log.Printf("failed to ensure users table: %v", err)
	}
}

func ensurePostsTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS posts (
            id UUID PRIMARY KEY,
            title TEXT NOT NULL,
            content TEXT NOT NULL,
            author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            category TEXT NOT NULL DEFAULT 'Other' CHECK (category IN (
                'Technology','React','CSS','JavaScript','Node.js','MongoDB','Other'
            )),
            tags TEXT[] NOT NULL DEFAULT '{}',
            published BOOLEAN NOT NULL DEFAULT FALSE,
            views INTEGER NOT NULL DEFAULT 0,
            image TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_posts_author ON posts(author_id);
        CREATE INDEX IF NOT EXISTS idx_posts_category ON posts(category);
        CREATE INDEX IF NOT EXISTS idx_posts_created ON posts(created_at DESC);
    `)
	if err != nil {
		log.Printf("failed to ensure posts table: %v", err)
	}
}

// ensurePostLikesTable creates the likes join table. The composite primary
// key makes the second of two concurrent likes fail at the store.
func ensurePostLikesTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS post_likes (
            post_id UUID NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
            user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            PRIMARY KEY (post_id, user_id)
        );
        CREATE INDEX IF NOT EXISTS idx_post_likes_user ON post_likes(user_id);
    `)
	if err != nil {
		log.Printf("failed to ensure post_likes table: %v", err)
	}
}

func ensureCommentsTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS comments (
            id UUID PRIMARY KEY,
            content TEXT NOT NULL,
            author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            post_id UUID NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_id, created_at);
        CREATE INDEX IF NOT EXISTS idx_comments_author ON comments(author_id);
    `)
	if err != nil {
		log.Printf("failed to ensure comments table: %v", err)
	}
}

func ensureContactMessagesTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS contact_messages (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL,
            subject TEXT NOT NULL,
            message TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'new' CHECK (status IN ('new','read','replied')),
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_contact_status ON contact_messages(status);
    `)
	if err != nil {
		log.Printf("failed to ensure contact_messages table: %v", err)
	}
}
