package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/warlords/internal/scraper"
)

func TestEncode(t *testing.T) {
	doc := &scraper.Document{
		Generated:          "Generated on Mon Jan 01 00:00:00 2024",
		GeneratedTimestamp: 1704067200,
		SchemaVersion:      1,
		WarStatus:          "Orcs & trolls <gather>.\nQuiet.",
		Warlords: []scraper.Side{
			{Description: "West", Characters: []scraper.Record{{"name": "Aragil", "class": "Warrior"}}},
			{Description: "East", Characters: []scraper.Record{}},
		},
	}

	data, err := Encode(doc)
	require.NoError(t, err)

	expected := `{
  "generated": "Generated on Mon Jan 01 00:00:00 2024",
  "generated_timestamp": 1704067200,
  "schema_version": 1,
  "war_status": "Orcs & trolls <gather>.\nQuiet.",
  "warlords": [
    {
      "characters": [
        {
          "class": "Warrior",
          "name": "Aragil"
        }
      ],
      "description": "West"
    },
    {
      "characters": [],
      "description": "East"
    }
  ]
}
`
	require.Equal(t, expected, string(data))
}

func TestFileStoreWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "warlords.json")
	s := NewFileStore()

	require.NoError(t, s.Write(path, []byte("first\n")))
	require.NoError(t, s.Write(path, []byte("second\n")))

	data, err := s.Read(path)
	require.NoError(t, err)
	require.Equal(t, "second\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestFileStoreWriteKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warlords.json")
	s := NewFileStore()

	require.NoError(t, s.Write(path, []byte("first\n")))
	require.NoError(t, os.Chmod(path, 0o600))
	require.NoError(t, s.Write(path, []byte("second\n")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := s.Read(path)
	require.NoError(t, err)
	require.Equal(t, "second\n", string(data))
}

func TestFileStoreWriteMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "warlords.json")
	require.Error(t, NewFileStore().Write(path, []byte("{}\n")))

	_, err := NewFileStore().Read(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}
