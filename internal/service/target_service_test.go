package service

import (
	"testing"
	"time"

	"github.com/amnatp/taiyim/internal/domain/entity"
)

func fptr(v float64) *float64 { return &v }

func TestProteinTargetsWeightBased(t *testing.T) {
	// Age 9 falls in the (6,12] band [0.9, 1.09]; stage 2 scales the upper
	// end by 1.40.
	min, max := ProteinTargets(fptr(9), fptr(28), "2")
	if min != 25.2 {
		t.Fatalf("expected min 25.2, got %v", min)
	}
	if max != 42.7 { // 28 * 1.09 * 1.40 = 42.728
		t.Fatalf("expected max 42.7, got %v", max)
	}
}

func TestProteinTargetsNilAgeUsesAdolescentBand(t *testing.T) {
	min, max := ProteinTargets(nil, fptr(28), "5")
	if min != 26.9 { // 28 * 0.8 * 1.20
		t.Fatalf("expected min 26.9, got %v", min)
	}
	if max != 41.9 { // 28 * 1.07 * 1.40
		t.Fatalf("expected max 41.9, got %v", max)
	}
}

func TestProteinTargetsBaselineWithoutWeight(t *testing.T) {
	min, max := ProteinTargets(fptr(9), nil, "3")
	if min != 34 {
		t.Fatalf("expected baseline min 34, got %v", min)
	}
	if max != 40.8 { // 34 * 1.20
		t.Fatalf("expected baseline max 40.8, got %v", max)
	}
}

func TestProteinTargetsUnknownStageDefaultsToStageTwo(t *testing.T) {
	min2, max2 := ProteinTargets(fptr(9), fptr(28), "2")
	minX, maxX := ProteinTargets(fptr(9), fptr(28), "banana")
	if min2 != minX || max2 != maxX {
		t.Fatalf("unknown stage should match stage 2: got [%v,%v] want [%v,%v]", minX, maxX, min2, max2)
	}
}

func TestProteinTargetsMinNeverExceedsMax(t *testing.T) {
	stages := []string{"2", "3", "4", "5", ""}
	weights := []*float64{nil, fptr(8), fptr(28), fptr(62)}
	for age := 0.0; age <= 18; age += 0.5 {
		for _, stage := range stages {
			for _, w := range weights {
				min, max := ProteinTargets(fptr(age), w, stage)
				if min > max {
					t.Fatalf("min %v > max %v for age=%v stage=%q weight=%v", min, max, age, stage, w)
				}
			}
		}
	}
}

func TestSodiumTarget(t *testing.T) {
	cases := []struct {
		name  string
		age   *float64
		stage string
		want  float64
	}{
		{"stage 2 uses age band upper bound", fptr(9), "2", 1175},
		{"stage 3 capped", fptr(9), "3", 3000},
		{"stage 4 capped", fptr(9), "4", 2000},
		{"stage 5 capped", fptr(2), "5", 2000},
		{"nil age stage 2", nil, "2", 1500},
		{"infant", fptr(0.5), "2", 550},
		{"adult band", fptr(17), "2", 1600},
	}
	for _, tc := range cases {
		if got := SodiumTarget(tc.age, tc.stage); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestSodiumRangeBands(t *testing.T) {
	lo, hi := SodiumRange(fptr(9))
	if lo != 400 || hi != 1175 {
		t.Fatalf("expected [400,1175] for age 9, got [%v,%v]", lo, hi)
	}
	lo, hi = SodiumRange(nil)
	if lo != 500 || hi != 1500 {
		t.Fatalf("expected [500,1500] for nil age, got [%v,%v]", lo, hi)
	}
}

func TestEstimateEGFR(t *testing.T) {
	got := EstimateEGFR(fptr(10), fptr(120), fptr(0.5), entity.SexFemale)
	if got == nil || *got != 132.0 { // 0.55 * 120 / 0.5
		t.Fatalf("expected 132.0, got %v", got)
	}

	// Adolescent male uses k=0.70.
	got = EstimateEGFR(fptr(15), fptr(160), fptr(0.8), entity.SexMale)
	if got == nil || *got != 140.0 { // 0.70 * 160 / 0.8
		t.Fatalf("expected 140.0, got %v", got)
	}

	// Adolescent female uses k=0.55.
	got = EstimateEGFR(fptr(15), fptr(160), fptr(0.8), entity.SexFemale)
	if got == nil || *got != 110.0 {
		t.Fatalf("expected 110.0, got %v", got)
	}

	// Unknown age falls back to k=0.413.
	got = EstimateEGFR(nil, fptr(100), fptr(0.5), "")
	if got == nil || *got != 82.6 {
		t.Fatalf("expected 82.6, got %v", got)
	}
}

func TestEstimateEGFRMissingInputs(t *testing.T) {
	cases := []struct {
		name   string
		height *float64
		scr    *float64
	}{
		{"nil height", nil, fptr(0.5)},
		{"nil creatinine", fptr(120), nil},
		{"zero height", fptr(0), fptr(0.5)},
		{"zero creatinine", fptr(120), fptr(0)},
		{"negative creatinine", fptr(120), fptr(-1)},
	}
	for _, tc := range cases {
		if got := EstimateEGFR(fptr(10), tc.height, tc.scr, entity.SexMale); got != nil {
			t.Fatalf("%s: expected nil, got %v", tc.name, *got)
		}
	}
}

func TestAgeFromDOB(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	if got := AgeFromDOB("2015-03-10", now); got == nil || *got != 9 {
		t.Fatalf("expected 9 on the birthday, got %v", got)
	}
	if got := AgeFromDOB("2015-03-11", now); got == nil || *got != 8 {
		t.Fatalf("expected 8 the day before the birthday, got %v", got)
	}
	if got := AgeFromDOB("", now); got != nil {
		t.Fatalf("expected nil for empty dob, got %v", *got)
	}
	if got := AgeFromDOB("not-a-date", now); got != nil {
		t.Fatalf("expected nil for malformed dob, got %v", *got)
	}
}

func TestComputeTargets(t *testing.T) {
	targets := ComputeTargets(fptr(9), fptr(28), "2")
	want := entity.Targets{ProteinMinG: 25.2, ProteinMaxG: 42.7, SodiumMaxMg: 1175}
	if targets != want {
		t.Fatalf("expected %+v, got %+v", want, targets)
	}
}
