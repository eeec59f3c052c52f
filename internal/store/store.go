// Package store keeps the download and search history in a local
// SQLite database.
package store

import (
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gifpal/internal/errors"
	"gifpal/internal/log"
)

// Download is one GIF saved from a search provider.
type Download struct {
	Id            int `gorm:"primary_key;AUTO_INCREMENT"`
	Provider      string
	RemoteId      string
	Title         string
	Url           string
	Path          string
	TimeStampUnix int64
}

// SearchQuery is one search the user ran.
type SearchQuery struct {
	Id            int `gorm:"primary_key;AUTO_INCREMENT"`
	Term          string
	Provider      string
	Results       int
	TimeStampUnix int64
}

// Manager owns the history database connection.
type Manager struct {
	ConnectionString string
	Db               *gorm.DB
}

// DefaultPath returns the standard history database location, next to
// the config file.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "could not determine home directory")
	}
	return filepath.Join(home, ".config", "gifpal", "history.db"), nil
}

// NewManager creates a manager for the database at connectionString.
// Call Open before use.
func NewManager(connectionString string) *Manager {
	return &Manager{ConnectionString: connectionString}
}

// Open connects to the database and migrates the schema.
func (m *Manager) Open() error {
	if err := os.MkdirAll(filepath.Dir(m.ConnectionString), 0755); err != nil {
		return errors.Wrap(err, "failed to create database directory")
	}
	db, err := gorm.Open(sqlite.Open(m.ConnectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return errors.Wrap(err, "failed to open history database")
	}
	m.Db = db
	if err := db.AutoMigrate(&Download{}, &SearchQuery{}); err != nil {
		return errors.Wrap(err, "failed to migrate history database")
	}
	log.Debugf("History database open at %s", m.ConnectionString)
	return nil
}

// Close releases the database connection.
func (m *Manager) Close() error {
	if m.Db == nil {
		return nil
	}
	sql, err := m.Db.DB()
	if err != nil {
		return err
	}
	if err := sql.Close(); err != nil {
		return err
	}
	m.Db = nil
	return nil
}

// RecordDownload stores one saved GIF in the history.
func (m *Manager) RecordDownload(provider, remoteId, title, url, path string) error {
	d := Download{
		Provider:      provider,
		RemoteId:      remoteId,
		Title:         title,
		Url:           url,
		Path:          path,
		TimeStampUnix: time.Now().Unix(),
	}
	return m.Db.Create(&d).Error
}

// RecordSearch stores one search query in the history.
func (m *Manager) RecordSearch(term, provider string, results int) error {
	q := SearchQuery{
		Term:          term,
		Provider:      provider,
		Results:       results,
		TimeStampUnix: time.Now().Unix(),
	}
	return m.Db.Create(&q).Error
}

// HasDownload reports whether a provider GIF was downloaded before.
func (m *Manager) HasDownload(provider, remoteId string) (bool, error) {
	var count int64
	err := m.Db.Model(&Download{}).
		Where("provider = ? AND remote_id = ?", provider, remoteId).
		Count(&count).Error
	return count > 0, err
}

// RecentDownloads returns the newest downloads, most recent first.
func (m *Manager) RecentDownloads(limit int) ([]Download, error) {
	var downloads []Download
	err := m.Db.Order("time_stamp_unix desc, id desc").Limit(limit).Find(&downloads).Error
	return downloads, err
}

// RecentSearches returns the newest search queries, most recent first.
func (m *Manager) RecentSearches(limit int) ([]SearchQuery, error) {
	var queries []SearchQuery
	err := m.Db.Order("time_stamp_unix desc, id desc").Limit(limit).Find(&queries).Error
	return queries, err
}
