package gamedata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/delve/internal/random"
)

func TestLoadPlan(t *testing.T) {
	plan, err := LoadPlan()
	if err != nil {
		t.Fatalf("Failed to load plan: %v", err)
	}
	if err := plan.Validate(); err != nil {
		t.Fatalf("embedded plan is invalid: %v", err)
	}

	entries := 0
	for _, l := range plan.Levels {
		if l.Entry {
			entries++
		}
	}
	if entries != 1 {
		t.Errorf("Expected 1 entry level, got %d", entries)
	}
}

func TestLevelDefDefaults(t *testing.T) {
	var def LevelDef
	up, down := def.Stairs()
	if up != 1 || down != 1 {
		t.Errorf("default stairs = (%d, %d), want (1, 1)", up, down)
	}
	if def.LevelDepth() != 1 {
		t.Errorf("default depth = %d, want 1", def.LevelDepth())
	}

	zero := 0
	def.DownStairs = &zero
	if _, down := def.Stairs(); down != 0 {
		t.Errorf("explicit zero down stairs lost, got %d", down)
	}
}

func TestPlanValidate(t *testing.T) {
	name := "A"
	ghost := "B"
	zero := 0

	tests := []struct {
		name    string
		plan    Plan
		wantErr bool
	}{
		{"empty", Plan{}, true},
		{"no entry", Plan{Levels: []LevelDef{{Name: "A", Type: "room"}}}, true},
		{"valid", Plan{Levels: []LevelDef{{Name: "A", Type: "room", Entry: true}}}, false},
		{"duplicate name", Plan{Levels: []LevelDef{{Name: "A", Entry: true}, {Name: "A"}}}, true},
		{"entry without up stairs", Plan{Levels: []LevelDef{{Name: "A", Entry: true, UpStairs: &zero}}}, true},
		{"unknown junction level", Plan{
			Levels:    []LevelDef{{Name: "A", Entry: true}},
			Junctions: []JunctionDef{{Up: &name, Down: &ghost}},
		}, true},
		{"empty junction", Plan{
			Levels:    []LevelDef{{Name: "A", Entry: true}},
			Junctions: []JunctionDef{{}},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadPlanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	content := `{"levels":[{"name":"Only","type":"maze","entry":true}],"junctions":[{"up":null,"down":"Only"}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	plan, err := LoadPlanFile(path)
	if err != nil {
		t.Fatalf("LoadPlanFile: %v", err)
	}
	if len(plan.Levels) != 1 || plan.Levels[0].Type != "maze" {
		t.Errorf("unexpected plan %+v", plan)
	}
	if plan.Junctions[0].Up != nil {
		t.Error("null junction side should decode to nil")
	}

	if _, err := LoadPlanFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestTexts(t *testing.T) {
	texts, err := LoadTexts()
	if err != nil {
		t.Fatalf("Failed to load texts: %v", err)
	}

	src := random.New(5)
	for i := 0; i < 20; i++ {
		if texts.Headstone(src) == "" || texts.Graffito(src) == "" || texts.Statue(src) == "" {
			t.Fatal("drawn text should not be empty")
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    tcell.Color
		wantErr bool
	}{
		{"#FF0000", tcell.NewRGBColor(255, 0, 0), false},
		{"00ff80", tcell.NewRGBColor(0, 255, 128), false},
		{"#FFF", tcell.ColorDefault, true},
		{"#GG0000", tcell.ColorDefault, true},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPalette(t *testing.T) {
	p, err := LoadPalette()
	if err != nil {
		t.Fatalf("Failed to load palette: %v", err)
	}
	if p.Color("stairs_up") != MustParseHexColor("#FFFF60") {
		t.Error("stairs_up colour not read from palette")
	}
	if p.Color("no_such_tile") != MustParseHexColor(p.Default) {
		t.Error("unknown tile should use the default colour")
	}
}
