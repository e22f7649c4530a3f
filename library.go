package lsdj

import (
	"crypto/sha1"
	"database/sql"
	"fmt"

	"github.com/bodgit/lsdj/compression"
	"github.com/bodgit/lsdj/metadata"
	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"
)

// LibrarySong describes a song held in the library.
type LibrarySong struct {
	ID      int64
	SHA1    string
	Title   metadata.Title
	Version byte
	Blocks  int
}

// Library is a catalogue of songs collected from save files. Each song is
// stored once, keyed by the SHA-1 of its compressed blocks.
type Library struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func NewLibrary(file string) (*Library, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS song (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, title BLOB NOT NULL, version INTEGER NOT NULL, blocks INTEGER NOT NULL, data BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS source (song_id INTEGER NOT NULL, path TEXT NOT NULL, slot INTEGER NOT NULL, UNIQUE(path, slot), FOREIGN KEY(song_id) REFERENCES song(id))"); err != nil {
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}

	return &Library{
		db:  db,
		enc: enc,
		dec: dec,
	}, nil
}

func (l *Library) Close() error {
	l.dec.Close()
	if err := l.enc.Close(); err != nil {
		return err
	}
	return l.db.Close()
}

// AddSong stores the compressed blocks of a song, returning its id. Adding
// the same blocks again returns the existing id.
func (l *Library) AddSong(title metadata.Title, version byte, data []byte) (int64, error) {
	if len(data) == 0 || len(data)%compression.BlockSize != 0 {
		return 0, fmt.Errorf("lsdj: %d bytes is not a whole number of blocks: %w", len(data), ErrFormat)
	}

	sha := fmt.Sprintf("%X", sha1.Sum(data))

	var id int64
	switch err := l.db.QueryRow("SELECT id FROM song WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		// Another writer may get there first
		if _, err := l.db.Exec("INSERT OR IGNORE INTO song (sha1, title, version, blocks, data) VALUES (?, ?, ?, ?, ?)", sha, title[:], version, len(data)/compression.BlockSize, l.enc.EncodeAll(data, nil)); err != nil {
			return 0, err
		}
		if err := l.db.QueryRow("SELECT id FROM song WHERE sha1 = ?", sha).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

func (l *Library) addSource(song int64, path string, slot int) error {
	if _, err := l.db.Exec("INSERT OR REPLACE INTO source (song_id, path, slot) VALUES (?, ?, ?)", song, path, slot); err != nil {
		return err
	}
	return nil
}

// Songs returns every song in the library, ordered by id.
func (l *Library) Songs() ([]LibrarySong, error) {
	rows, err := l.db.Query("SELECT id, sha1, title, version, blocks FROM song ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []LibrarySong
	for rows.Next() {
		var s LibrarySong
		var title []byte
		if err := rows.Scan(&s.ID, &s.SHA1, &title, &s.Version, &s.Blocks); err != nil {
			return nil, err
		}
		copy(s.Title[:], title)
		songs = append(songs, s)
	}

	return songs, rows.Err()
}

// Song returns the description and compressed blocks of song id.
func (l *Library) Song(id int64) (LibrarySong, []byte, error) {
	s := LibrarySong{ID: id}
	var title, data []byte
	switch err := l.db.QueryRow("SELECT sha1, title, version, blocks, data FROM song WHERE id = ?", id).Scan(&s.SHA1, &title, &s.Version, &s.Blocks, &data); err {
	case sql.ErrNoRows:
		return s, nil, fmt.Errorf("lsdj: library song %d: %w", id, ErrNoSong)
	case nil:
		copy(s.Title[:], title)
		b, err := l.dec.DecodeAll(data, nil)
		if err != nil {
			return s, nil, err
		}
		return s, b, nil
	default:
		return s, nil, err
	}
}

// Sources returns the save files and slots song id has been seen in.
func (l *Library) Sources(id int64) ([]string, error) {
	rows, err := l.db.Query("SELECT path, slot FROM source WHERE song_id = ? ORDER BY path, slot", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var path string
		var slot int
		if err := rows.Scan(&path, &slot); err != nil {
			return nil, err
		}
		sources = append(sources, fmt.Sprintf("%s:%02X", path, slot))
	}

	return sources, rows.Err()
}
