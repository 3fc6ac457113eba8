package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vango-dev/patchwork/internal/config"
	"github.com/vango-dev/patchwork/pkg/vdom"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	bs, err := OpenBolt(filepath.Join(t.TempDir(), "snap.db"))
	require.NoError(t, err)
	t.Cleanup(func() { bs.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"bolt":   bs,
		"s3":     NewS3Store(newFakeS3(), "views", "snapshots/"),
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := st.Get(ctx, "home")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, st.Put(ctx, "home", []byte("v1")))
			require.NoError(t, st.Put(ctx, "about", []byte("a")))
			require.NoError(t, st.Put(ctx, "home", []byte("v2")))

			got, err := st.Get(ctx, "home")
			require.NoError(t, err)
			require.Equal(t, []byte("v2"), got)

			names, err := st.List(ctx)
			require.NoError(t, err)
			require.Equal(t, []string{"about", "home"}, names)

			require.NoError(t, st.Delete(ctx, "home"))
			require.NoError(t, st.Delete(ctx, "home"))
			_, err = st.Get(ctx, "home")
			require.ErrorIs(t, err, ErrNotFound)

			names, err = st.List(ctx)
			require.NoError(t, err)
			require.Equal(t, []string{"about"}, names)
		})
	}
}

func TestStoreInvalidName(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, bad := range []string{"", "a/b", `a\b`, "tab\there"} {
				require.ErrorIs(t, st.Put(ctx, bad, []byte("x")), ErrInvalidName, "name %q", bad)
			}
		})
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	data := []byte("abc")
	require.NoError(t, st.Put(ctx, "x", data))
	data[0] = 'z'

	got, err := st.Get(ctx, "x")
	require.NoError(t, err)
	require.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, err := st.Get(ctx, "x")
	require.NoError(t, err)
	require.Equal(t, "abc", string(again))
}

func TestBoltStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snap.db")

	st, err := OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, st.Put(ctx, "home", []byte("kept")))
	require.NoError(t, st.Close())

	st, err = OpenBolt(path)
	require.NoError(t, err)
	defer st.Close()
	got, err := st.Get(ctx, "home")
	require.NoError(t, err)
	require.Equal(t, "kept", string(got))
}

func TestSaveLoadTree(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	clicked := func(vdom.Event) any { return "clicked" }
	root := vdom.Element("main", []vdom.Attribute{vdom.Attr("class", "page")},
		vdom.Element("button", []vdom.Attribute{vdom.On("click", clicked)}, vdom.Text("Go")),
		vdom.Element("input", []vdom.Attribute{vdom.Attr("checked", true), vdom.Attr("maxlength", 8)}),
	)

	require.NoError(t, SaveTree(ctx, st, "home", 42, root))

	sf, err := LoadTree(ctx, st, "home", func(string) vdom.Callback { return clicked })
	require.NoError(t, err)
	require.Equal(t, uint64(42), sf.Seq)
	require.True(t, vdom.Equal(root, sf.Root), "loaded tree differs: %v", sf.Root)

	_, err = LoadTree(ctx, st, "missing", nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOpen(t *testing.T) {
	st, err := Open(config.StoreConfig{Backend: config.BackendMemory})
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, st)

	st, err = Open(config.StoreConfig{Backend: config.BackendBolt, Path: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	require.IsType(t, &BoltStore{}, st)
	require.NoError(t, st.Close())

	st, err = Open(config.StoreConfig{Backend: config.BackendS3, S3: config.S3Config{Bucket: "b", Region: "us-east-1"}})
	require.NoError(t, err)
	require.IsType(t, &S3Store{}, st)

	_, err = Open(config.StoreConfig{Backend: "ftp"})
	require.Error(t, err)
}
