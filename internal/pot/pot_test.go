package pot

import "testing"

func TestThreeWayAllInDistinctStacks(t *testing.T) {
	// seat 0 all-in for 100 (A), seat 1 for 200 (B), seat 2 for 500 (C), none folded.
	contributions := map[int]int{0: 100, 1: 200, 2: 500}
	eligible := map[int]bool{0: true, 1: true, 2: true}

	pots := Build(contributions, eligible)
	if len(pots) != 3 {
		t.Fatalf("expected 3 pots, got %d: %+v", len(pots), pots)
	}
	if pots[0].Amount != 300 || len(pots[0].Eligible) != 3 {
		t.Errorf("main pot = %+v, want amount 300 eligible all three", pots[0])
	}
	if pots[1].Amount != 200 {
		t.Errorf("side pot 1 = %+v, want amount 200", pots[1])
	}
	if pots[2].Amount != 300 || len(pots[2].Eligible) != 1 || pots[2].Eligible[0] != 2 {
		t.Errorf("side pot 2 = %+v, want amount 300, only seat 2 eligible", pots[2])
	}
	if Total(pots) != 800 {
		t.Errorf("total = %d, want 800", Total(pots))
	}
}

func TestSidePotSplitScenario(t *testing.T) {
	// Spec §8 scenario 4: seats 0,1,2 stacks 100/200/500, all call to showdown.
	contributions := map[int]int{0: 100, 1: 100, 2: 100}
	eligible := map[int]bool{0: true, 1: true, 2: true}
	pots := Build(contributions, eligible)
	if len(pots) != 1 || pots[0].Amount != 300 {
		t.Fatalf("expected single pot of 300, got %+v", pots)
	}
}

func TestFoldedSeatContributesButIsNotEligible(t *testing.T) {
	contributions := map[int]int{0: 60, 1: 60, 2: 60}
	eligible := map[int]bool{0: false, 1: true, 2: true} // seat 0 folded after putting in chips
	pots := Build(contributions, eligible)
	if len(pots) != 1 {
		t.Fatalf("expected 1 pot, got %+v", pots)
	}
	if pots[0].Amount != 180 {
		t.Errorf("pot amount = %d, want 180 (folded chips stay in)", pots[0].Amount)
	}
	for _, s := range pots[0].Eligible {
		if s == 0 {
			t.Errorf("folded seat 0 must not be eligible")
		}
	}
}

func TestPotSoundness(t *testing.T) {
	contributions := map[int]int{0: 50, 1: 150, 2: 150, 3: 400}
	eligible := map[int]bool{0: true, 1: false, 2: true, 3: true}
	pots := Build(contributions, eligible)

	sum := 0
	for _, c := range contributions {
		sum += c
	}
	if Total(pots) != sum {
		t.Fatalf("pot total %d != contribution total %d", Total(pots), sum)
	}

	foldedSet := map[int]bool{1: true}
	for _, p := range pots {
		for _, s := range p.Eligible {
			if foldedSet[s] {
				t.Errorf("folded seat %d eligible in pot %+v", s, p)
			}
		}
	}
}

func TestZeroEligibleLayerForfeitsWhenNoFurtherLayer(t *testing.T) {
	// Seat 0 contributes 100 and stays in; seat 1 contributes 100 then folds;
	// seat 2 contributes 300 then folds. The top layer (100-300) is
	// contested only by seat 2, who folded, so it has no eligible winner and
	// there is no further layer above it to carry forward onto: it is
	// forfeited rather than awarded to anyone.
	contributions := map[int]int{0: 100, 1: 100, 2: 300}
	eligible := map[int]bool{0: true, 1: false, 2: false}
	pots := Build(contributions, eligible)

	if len(pots) != 1 {
		t.Fatalf("expected 1 awarded pot, got %+v", pots)
	}
	if pots[0].Amount != 300 || len(pots[0].Eligible) != 1 || pots[0].Eligible[0] != 0 {
		t.Fatalf("main pot = %+v, want amount 300 eligible only seat 0", pots[0])
	}
	if Total(pots) == 500 {
		t.Fatalf("forfeited top layer must not be awarded to any pot")
	}
}
