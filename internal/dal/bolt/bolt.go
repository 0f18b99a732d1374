package bolt

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	bbolt "go.etcd.io/bbolt"
)

// CollectionsBucket holds every persisted collection, keyed by collection name.
const CollectionsBucket = "collections"

// Client represents a bbolt client.
type Client struct {
	db *bbolt.DB
}

// DB returns the underlying bbolt database.
func (c *Client) DB() *bbolt.DB {
	return c.db
}

// Close closes the database file for graceful shutdown.
func (c *Client) Close() error {
	return c.db.Close()
}

// NewClient opens (or creates) the database file at the given path and
// ensures the collections bucket exists.
func NewClient(path string) (*Client, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage file: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(CollectionsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create collections bucket: %w", err)
	}

	return &Client{db: db}, nil
}

// MustNewClient creates a new bbolt client at the configured storage path.
func MustNewClient() *Client {
	path := viper.GetString("storage.path")
	if path == "" {
		path = "./data/storefront.db"
	}

	client, err := NewClient(path)
	if err != nil {
		panic(err)
	}

	return client
}
