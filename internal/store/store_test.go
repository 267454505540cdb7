package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/proteintoolbox/ptb/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(store.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustUpsert(t *testing.T, s *store.Store, tools ...store.Tool) {
	t.Helper()
	for _, tool := range tools {
		if err := s.UpsertTool(tool); err != nil {
			t.Fatalf("UpsertTool(%s): %v", tool.Name, err)
		}
	}
}

func names(tools []store.Tool) []string {
	out := make([]string, len(tools))
	for i, t := range tools {
		out[i] = t.Name
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ─── New ────────────────────────────────────────────────────────────────────

func TestNew_CreatesDBFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s, err := store.New(store.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(filepath.Join(dir, "ptb.db")); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestNew_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	s, err := store.New(store.Config{DataDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	mustUpsert(t, s, store.Tool{Name: "OpenMM", Category: "simulation"})
	s.Close()

	s2, err := store.New(store.Config{DataDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	if _, err := s2.GetTool("openmm"); err != nil {
		t.Errorf("tool lost after reopen: %v", err)
	}
}

// ─── Tools ──────────────────────────────────────────────────────────────────

func TestGetTool_CaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	mustUpsert(t, s, store.Tool{Name: "BioPython", Category: "analysis", PipPackage: "biopython"})

	got, err := s.GetTool("BIOPYTHON")
	if err != nil {
		t.Fatalf("GetTool: %v", err)
	}
	if got.Name != "BioPython" || got.PipPackage != "biopython" {
		t.Errorf("got %+v", got)
	}
}

func TestGetTool_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetTool("nothing")
	if !errors.Is(err, store.ErrToolNotFound) {
		t.Errorf("expected ErrToolNotFound, got %v", err)
	}
}

func TestUpsertTool_Validation(t *testing.T) {
	s := newTestStore(t)
	if err := s.UpsertTool(store.Tool{Name: " ", Category: "x"}); err == nil {
		t.Error("expected error for empty name")
	}
	if err := s.UpsertTool(store.Tool{Name: "x"}); err == nil {
		t.Error("expected error for empty category")
	}
}

func TestUpsertTool_Replaces(t *testing.T) {
	s := newTestStore(t)
	mustUpsert(t, s,
		store.Tool{Name: "Vina", Category: "docking", Description: "old"},
		store.Tool{Name: "vina", Category: "docking", Description: "new"},
	)

	all, err := s.ListTools("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 tool after upsert, got %d", len(all))
	}
	if all[0].Description != "new" {
		t.Errorf("Description = %q, want new", all[0].Description)
	}
}

func TestListTools_FilterAndOrder(t *testing.T) {
	s := newTestStore(t)
	mustUpsert(t, s,
		store.Tool{Name: "RFdiffusion", Category: "design"},
		store.Tool{Name: "OpenMM", Category: "simulation"},
		store.Tool{Name: "ProteinMPNN", Category: "Design"},
	)

	design, err := s.ListTools("DESIGN")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"ProteinMPNN", "RFdiffusion"}; !equalStrings(names(design), want) {
		t.Errorf("ListTools(design) = %v, want %v", names(design), want)
	}

	all, err := s.ListTools("")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"OpenMM", "ProteinMPNN", "RFdiffusion"}; !equalStrings(names(all), want) {
		t.Errorf("ListTools() = %v, want %v", names(all), want)
	}

	none, err := s.ListTools("quantum")
	if err != nil {
		t.Fatal(err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", none)
	}
}

func TestSetInstalled(t *testing.T) {
	s := newTestStore(t)
	mustUpsert(t, s, store.Tool{Name: "FreeSASA", Category: "analysis"})

	if err := s.SetInstalled("freesasa", true); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetTool("FreeSASA")
	if !got.Installed {
		t.Error("expected Installed = true")
	}

	if err := s.SetInstalled("ghost", true); !errors.Is(err, store.ErrToolNotFound) {
		t.Errorf("expected ErrToolNotFound, got %v", err)
	}
}

func TestSearchTools(t *testing.T) {
	s := newTestStore(t)
	mustUpsert(t, s,
		store.Tool{Name: "AutoDock Vina", Category: "docking"},
		store.Tool{Name: "OpenMM", Category: "simulation"},
		store.Tool{Name: "PDBFixer", Category: "simulation"},
	)

	tests := []struct {
		query string
		want  []string
	}{
		{"simulation", []string{"OpenMM", "PDBFixer"}},
		{"autodock vina", []string{"AutoDock Vina"}},
		{"unknown thing", []string{"AutoDock Vina", "OpenMM", "PDBFixer"}},
		{"", []string{"AutoDock Vina", "OpenMM", "PDBFixer"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := s.SearchTools(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			if !equalStrings(names(got), tt.want) {
				t.Errorf("SearchTools(%q) = %v, want %v", tt.query, names(got), tt.want)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	s := newTestStore(t)
	mustUpsert(t, s,
		store.Tool{Name: "a", Category: "Design"},
		store.Tool{Name: "b", Category: "design"},
		store.Tool{Name: "c", Category: "analysis"},
	)
	got, err := s.Categories()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"analysis", "design"}; !equalStrings(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

// ─── Seeding ────────────────────────────────────────────────────────────────

func TestSeedTools_Builtin(t *testing.T) {
	s := newTestStore(t)
	n, err := s.SeedTools("")
	if err != nil {
		t.Fatal(err)
	}
	if n == 0 {
		t.Fatal("built-in seed wrote no tools")
	}
	all, _ := s.ListTools("")
	if len(all) != n {
		t.Errorf("ListTools returned %d, seed wrote %d", len(all), n)
	}

	// Idempotent, and keeps installed flags.
	if err := s.SetInstalled("OpenMM", true); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SeedTools(""); err != nil {
		t.Fatal(err)
	}
	again, _ := s.ListTools("")
	if len(again) != n {
		t.Errorf("reseed changed count: %d -> %d", n, len(again))
	}
	openmm, _ := s.GetTool("OpenMM")
	if !openmm.Installed {
		t.Error("reseed cleared installed flag")
	}
}

func TestSeedTools_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.yaml")
	content := `tools:
  - name: Foldseek
    category: search
    description: Structure similarity search.
    installed: true
  - name: DSSP
    category: analysis
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s := newTestStore(t)
	n, err := s.SeedTools(path)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("seeded %d tools, want 2", n)
	}
	fs, err := s.GetTool("foldseek")
	if err != nil {
		t.Fatal(err)
	}
	if !fs.Installed || fs.Category != "search" {
		t.Errorf("got %+v", fs)
	}
}

func TestSeedTools_Errors(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.SeedTools(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing seed file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("tools: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SeedTools(bad); err == nil {
		t.Error("expected error for corrupt seed file")
	}
}

// ─── Plans ──────────────────────────────────────────────────────────────────

func TestSavePlan_GetPlan(t *testing.T) {
	s := newTestStore(t)
	id, err := s.SavePlan(store.PlanRecord{
		Goal:         "design a binder",
		Kind:         "protein_design",
		PlanJSON:     `{"steps":[{"id":"obs"}]}`,
		AnalysisJSON: `{"num_steps":1}`,
	})
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}

	got, err := s.GetPlan(id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Goal != "design a binder" || got.Kind != "protein_design" {
		t.Errorf("got %+v", got)
	}
	if got.CreatedAt == "" {
		t.Error("CreatedAt not set")
	}
}

func TestSavePlan_RequiresPlan(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.SavePlan(store.PlanRecord{Goal: "x"}); err == nil {
		t.Error("expected error for empty plan_json")
	}
}

func TestGetPlan_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetPlan("nope"); !errors.Is(err, store.ErrPlanNotFound) {
		t.Errorf("expected ErrPlanNotFound, got %v", err)
	}
}

func TestRecentPlans_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	stamps := []string{
		"2026-01-01T00:00:00.000000Z",
		"2026-01-03T00:00:00.000000Z",
		"2026-01-02T00:00:00.000000Z",
	}
	for i, ts := range stamps {
		_, err := s.SavePlan(store.PlanRecord{
			ID:        string(rune('a' + i)),
			PlanJSON:  "{}",
			CreatedAt: ts,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.RecentPlans(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "c" {
		t.Errorf("RecentPlans(2) ids = %v", planIDs(got))
	}

	empty := newTestStore(t)
	none, err := empty.RecentPlans(0)
	if err != nil {
		t.Fatal(err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", none)
	}
}

func planIDs(ps []store.PlanRecord) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

// ─── Projects ───────────────────────────────────────────────────────────────

func TestCreateProject(t *testing.T) {
	s := newTestStore(t)
	p, err := s.CreateProject("binder-x", "VHH against target X")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "binder-x" || p.Description != "VHH against target X" || p.CreatedAt == "" {
		t.Errorf("got %+v", p)
	}
	if info, err := os.Stat(p.Dir); err != nil || !info.IsDir() {
		t.Errorf("project dir %s not created: %v", p.Dir, err)
	}
	if filepath.Base(filepath.Dir(p.Dir)) != "projects" {
		t.Errorf("project dir %s not under projects/", p.Dir)
	}

	got, err := s.GetProject("binder-x")
	if err != nil {
		t.Fatal(err)
	}
	if got.Description != p.Description || got.Dir != p.Dir {
		t.Errorf("GetProject = %+v, want %+v", got, p)
	}
}

func TestCreateProject_RejectsDuplicate(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateProject("alpha", ""); err != nil {
		t.Fatal(err)
	}
	_, err := s.CreateProject("alpha", "again")
	if !errors.Is(err, store.ErrProjectExists) {
		t.Fatalf("expected ErrProjectExists, got %v", err)
	}
	p, err := s.GetProject("alpha")
	if err != nil {
		t.Fatal(err)
	}
	if p.Description != "" {
		t.Errorf("duplicate create overwrote description: %q", p.Description)
	}
}

func TestCreateProject_InvalidNames(t *testing.T) {
	s := newTestStore(t)
	for _, name := range []string{"", "  ", ".", "..", "a/b", `a\b`} {
		if _, err := s.CreateProject(name, ""); err == nil {
			t.Errorf("CreateProject(%q) succeeded", name)
		}
	}
}

func TestGetProject_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetProject("ghost"); !errors.Is(err, store.ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestListProjects_SortedByName(t *testing.T) {
	s := newTestStore(t)
	none, err := s.ListProjects()
	if err != nil {
		t.Fatal(err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", none)
	}

	for _, name := range []string{"gamma", "alpha", "beta"} {
		if _, err := s.CreateProject(name, ""); err != nil {
			t.Fatal(err)
		}
	}
	got, err := s.ListProjects()
	if err != nil {
		t.Fatal(err)
	}
	var gotNames []string
	for _, p := range got {
		gotNames = append(gotNames, p.Name)
	}
	if !equalStrings(gotNames, []string{"alpha", "beta", "gamma"}) {
		t.Errorf("ListProjects = %v", gotNames)
	}
}

func TestProjectFiles_AddAndFilter(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateProject("p1", ""); err != nil {
		t.Fatal(err)
	}

	src := t.TempDir()
	pdb := filepath.Join(src, "target.pdb")
	fasta := filepath.Join(src, "seqs.fasta")
	if err := os.WriteFile(pdb, []byte("ATOM\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fasta, []byte(">a\nMKT\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	dest, err := s.AddProjectFile("p1", pdb, "")
	if err != nil {
		t.Fatal(err)
	}
	if data, err := os.ReadFile(dest); err != nil || string(data) != "ATOM\n" {
		t.Errorf("copied file = %q, %v", data, err)
	}
	if _, err := s.AddProjectFile("p1", fasta, "inputs/designs.fasta"); err != nil {
		t.Fatal(err)
	}

	all, err := s.ProjectFiles("p1", "")
	if err != nil {
		t.Fatal(err)
	}
	if !equalStrings(all, []string{"inputs/designs.fasta", "target.pdb"}) {
		t.Errorf("ProjectFiles = %v", all)
	}
	pdbs, err := s.ProjectFiles("p1", ".pdb")
	if err != nil {
		t.Fatal(err)
	}
	if !equalStrings(pdbs, []string{"target.pdb"}) {
		t.Errorf("ProjectFiles(.pdb) = %v", pdbs)
	}
}

func TestAddProjectFile_Errors(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateProject("p1", ""); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(t.TempDir(), "a.pdb")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.AddProjectFile("ghost", src, ""); !errors.Is(err, store.ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
	if _, err := s.AddProjectFile("p1", filepath.Join(t.TempDir(), "missing.pdb"), ""); err == nil {
		t.Error("expected error for missing source")
	}
	if _, err := s.AddProjectFile("p1", src, "../escape.pdb"); err == nil {
		t.Error("expected error for destination outside the project")
	}
}

func TestSavePlan_ProjectTag(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.SavePlan(store.PlanRecord{Project: "ghost", PlanJSON: "{}"}); !errors.Is(err, store.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound for unknown project, got %v", err)
	}

	if _, err := s.CreateProject("p1", ""); err != nil {
		t.Fatal(err)
	}
	tagged, err := s.SavePlan(store.PlanRecord{Project: "p1", PlanJSON: "{}"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.SavePlan(store.PlanRecord{PlanJSON: "{}"}); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetPlan(tagged)
	if err != nil {
		t.Fatal(err)
	}
	if got.Project != "p1" {
		t.Errorf("Project = %q, want p1", got.Project)
	}

	inProject, err := s.ProjectPlans("p1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if !equalStrings(planIDs(inProject), []string{tagged}) {
		t.Errorf("ProjectPlans(p1) = %v", planIDs(inProject))
	}
	all, err := s.RecentPlans(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("RecentPlans = %d plans, want 2", len(all))
	}
}

func TestNewPlanRecord(t *testing.T) {
	rec, err := store.NewPlanRecord("p1", "goal", "custom", map[string]int{"n": 1}, []string{"a"})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Project != "p1" || rec.Goal != "goal" || rec.Kind != "custom" {
		t.Errorf("got %+v", rec)
	}
	if rec.PlanJSON != `{"n":1}` || rec.AnalysisJSON != `["a"]` {
		t.Errorf("encoded %s / %s", rec.PlanJSON, rec.AnalysisJSON)
	}

	if _, err := store.NewPlanRecord("", "", "", func() {}, nil); err == nil {
		t.Error("expected error for unencodable plan")
	}
	if _, err := store.NewPlanRecord("", "", "", nil, make(chan int)); err == nil {
		t.Error("expected error for unencodable analysis")
	}
}
