package regstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const registry = `# site registry
sites:
  alpha:
    directory: /srv/alpha
    branch: main
    remotes:
      - origin
      - backup
  beta:
    directory: /srv/beta
settings:
  default_branch: main
`

func tempStore(t *testing.T, contents string, opts ...Option) *Store {
	t.Helper()
	p := filepath.Join(t.TempDir(), "registry.reg")
	if contents != "" {
		if err := os.WriteFile(p, []byte(contents), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return Open(p, opts...)
}

func TestGet(t *testing.T) {
	s := tempStore(t, registry)
	for _, tc := range []struct {
		path string
		want string
		err  error
	}{
		{path: "sites.alpha.directory", want: "/srv/alpha"},
		{path: "sites.alpha.remotes[1]", want: "backup"},
		{path: "settings.default_branch", want: "main"},
		{path: "sites.gamma.directory", err: ErrNotFound},
		{path: "sites.alpha", err: ErrTypeMismatch},
	} {
		got, err := s.Get(tc.path)
		if !errors.Is(err, tc.err) {
			t.Errorf("Get(%q): err %v, want %v", tc.path, err, tc.err)
			continue
		}
		if got != tc.want {
			t.Errorf("Get(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestGetDefault(t *testing.T) {
	s := tempStore(t, registry)
	got, err := s.GetDefault("sites.alpha.branch", "trunk")
	if err != nil || got != "main" {
		t.Fatalf("GetDefault present = %q, %v", got, err)
	}
	got, err = s.GetDefault("sites.gamma.branch", "trunk")
	if err != nil || got != "trunk" {
		t.Fatalf("GetDefault missing = %q, %v", got, err)
	}
}

func TestGetList(t *testing.T) {
	s := tempStore(t, registry)
	got, err := s.GetList("sites.alpha.remotes")
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{"origin", "backup"}, got); d != "" {
		t.Errorf("GetList (-want +got):\n%s", d)
	}
	if _, err := s.GetList("sites.alpha.directory"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("GetList on scalar: %v", err)
	}
}

func TestChildren(t *testing.T) {
	s := tempStore(t, registry)
	got, err := s.Children("sites")
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{"alpha", "beta"}, got); d != "" {
		t.Errorf("Children(sites) (-want +got):\n%s", d)
	}
	top, err := s.Children("")
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{"sites", "settings"}, top); d != "" {
		t.Errorf("Children(\"\") (-want +got):\n%s", d)
	}
}

func TestSetPreservesLayout(t *testing.T) {
	ctx := context.Background()
	s := tempStore(t, registry)
	if err := s.Set(ctx, "sites.alpha.directory", "/srv/alpha2"); err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	want := `# site registry
sites:
  alpha:
    directory: /srv/alpha2
    branch: main
    remotes:
      - origin
      - backup
  beta:
    directory: /srv/beta
settings:
  default_branch: main
`
	if diff := cmp.Diff(want, string(d)); diff != "" {
		t.Errorf("document after Set (-want +got):\n%s", diff)
	}
	got, err := s.Get("sites.alpha.directory")
	if err != nil || got != "/srv/alpha2" {
		t.Fatalf("Get after Set = %q, %v", got, err)
	}
}

func TestSetCreatesFile(t *testing.T) {
	ctx := context.Background()
	s := tempStore(t, "")
	if err := s.Set(ctx, "sites.alpha.directory", "/srv/alpha"); err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	want := "sites:\n  alpha:\n    directory: /srv/alpha\n"
	if string(d) != want {
		t.Errorf("created document = %q, want %q", d, want)
	}
}

func TestSetListAndAppend(t *testing.T) {
	ctx := context.Background()
	s := tempStore(t, registry)
	if err := s.SetList(ctx, "sites.beta.remotes", []string{"origin"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Append(ctx, "sites.beta.remotes", "mirror"); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetList("sites.beta.remotes")
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{"origin", "mirror"}, got); d != "" {
		t.Errorf("list after SetList+Append (-want +got):\n%s", d)
	}
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := tempStore(t, "sites:\n  alpha:\n    directory: /srv/alpha\n  beta:\n    directory: /srv/beta\n")
	if err := s.Delete(ctx, "sites.alpha.directory"); err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "sites:\n  beta:\n    directory: /srv/beta\n" {
		t.Errorf("document after cascade delete = %q", d)
	}
	if err := s.Delete(ctx, "sites.alpha.directory"); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete of missing path: %v", err)
	}
}

// deleting the last leaf empties every ancestor below the root, so
// the whole document goes with it
func TestDeleteCascadesToEmptyDocument(t *testing.T) {
	ctx := context.Background()
	s := tempStore(t, "sites:\n  alpha:\n    directory: /srv/alpha\n")
	if err := s.Delete(ctx, "sites.alpha.directory"); err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if len(d) != 0 {
		t.Errorf("document after full cascade = %q", d)
	}
}

func TestReadOnly(t *testing.T) {
	ctx := context.Background()
	s := tempStore(t, registry, ReadOnly())
	if err := s.Set(ctx, "settings.default_branch", "trunk"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Set on read-only store: %v", err)
	}
	if err := s.Delete(ctx, "settings.default_branch"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Delete on read-only store: %v", err)
	}
	if _, err := s.Backup(); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Backup on read-only store: %v", err)
	}
	// reads still work
	if got, err := s.Get("settings.default_branch"); err != nil || got != "main" {
		t.Errorf("Get on read-only store = %q, %v", got, err)
	}
}

func TestRestricted(t *testing.T) {
	ctx := context.Background()
	s := tempStore(t, registry, Restricted())
	if _, err := s.Export("sites", FormatYAML); !errors.Is(err, ErrRestricted) {
		t.Errorf("Export on restricted store: %v", err)
	}
	if _, err := s.Where("sites", `branch == "main"`); !errors.Is(err, ErrRestricted) {
		t.Errorf("Where on restricted store: %v", err)
	}
	if err := s.MergePatch(ctx, "sites", []byte(`{}`)); !errors.Is(err, ErrRestricted) {
		t.Errorf("MergePatch on restricted store: %v", err)
	}
	// one path at a time stays open
	if got, err := s.Get("sites.alpha.branch"); err != nil || got != "main" {
		t.Errorf("Get on restricted store = %q, %v", got, err)
	}
}

func TestBackupAndRestore(t *testing.T) {
	ctx := context.Background()
	s := tempStore(t, registry)
	if err := s.Set(ctx, "settings.default_branch", "trunk"); err != nil {
		t.Fatal(err)
	}
	ids, err := s.Backups()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 {
		t.Fatalf("backups after one change: %d", len(ids))
	}
	if err := s.RestoreLatestBackup(); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get("settings.default_branch")
	if err != nil || got != "main" {
		t.Fatalf("Get after restore = %q, %v", got, err)
	}
}

func TestDiffLatestBackup(t *testing.T) {
	ctx := context.Background()
	s := tempStore(t, registry)
	if err := s.Set(ctx, "settings.default_branch", "trunk"); err != nil {
		t.Fatal(err)
	}
	diff, err := s.DiffLatestBackup()
	if err != nil {
		t.Fatal(err)
	}
	if diff == "" {
		t.Error("diff against backup is empty after a change")
	}
}

func TestValidate(t *testing.T) {
	s := tempStore(t, registry)
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
	bad := tempStore(t, "a:\n   b: 1\n  c: 2\n")
	if err := bad.Validate(); !errors.Is(err, ErrParse) {
		t.Errorf("Validate on ragged indent: %v", err)
	}
}
