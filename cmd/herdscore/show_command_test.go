package main

import (
	"context"
	"testing"
	"time"

	"herdscore/internal/record"
	"herdscore/internal/scoring"
	"herdscore/internal/store"
)

func seedAnimal(t *testing.T, env *cliTestEnv, animalID string) {
	t.Helper()

	st, err := store.Open(env.cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	score := 8.4
	view := record.ViewResult{
		ViewType:     record.ViewSide,
		Filename:     "side_test.jpg",
		UploadedAt:   time.Now().UTC(),
		Confidence:   0.9,
		Measurements: map[string]float64{"withers_height_cm": 142},
		TraitScores:  map[string]float64{"height": 8.4},
		FinalScore:   &score,
		Score:        &score,
		Verdict:      scoring.VerdictVeryGood,
	}
	if _, err := st.AppendView(context.Background(), animalID, "jersey", 410, view); err != nil {
		t.Fatalf("seed view: %v", err)
	}
}

func TestShowCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	seedAnimal(t, env, "IN-100")

	out, _, err := runCLI(t, []string{"show", "IN-100"}, env.configPath)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, "IN-100")
	requireContains(t, out, "jersey")
	requireContains(t, out, "withers_height_cm")
	requireContains(t, out, "VG")
}

func TestShowCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	seedAnimal(t, env, "IN-101")

	out, _, err := runCLI(t, []string{"show", "IN-101", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("show --json: %v", err)
	}
	requireContains(t, out, `"animal_id": "IN-101"`)
	requireContains(t, out, `"verdict": "VG"`)
}

func TestShowCommandMissingAnimal(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"show", "missing"}, env.configPath)
	if err == nil {
		t.Fatal("expected an error for an unknown animal")
	}
}

func TestFinalizeCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	seedAnimal(t, env, "IN-102")

	out, _, err := runCLI(t, []string{"finalize", "IN-102", "--breed", "sahiwal", "--weight", "395", "--farmer", "F-9", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	requireContains(t, out, `"breed": "sahiwal"`)
	requireContains(t, out, `"farmer_id": "F-9"`)

	_, _, err = runCLI(t, []string{"finalize", "IN-102"}, env.configPath)
	if err == nil {
		t.Fatal("finalize without --breed must fail")
	}
}
