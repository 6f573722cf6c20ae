package content

import "testing"

func TestUnitTableConsistency(t *testing.T) {
	for _, name := range UnitNames() {
		u, ok := UnitByName(name)
		if !ok {
			t.Fatalf("unit %q listed but not found", name)
		}
		if u.Name != name {
			t.Errorf("unit %q has mismatched Name %q", name, u.Name)
		}
		if u.SwarmMax < 1 {
			t.Errorf("unit %q has SwarmMax %d, want >= 1", name, u.SwarmMax)
		}
		if u.Effect != AttackNone && u.AttackRange < 1 {
			t.Errorf("unit %q has an attack effect but range %d", name, u.AttackRange)
		}
		if u.DeathSpawn != "" {
			if _, ok := UnitByName(u.DeathSpawn); !ok {
				t.Errorf("unit %q death-spawns unknown unit %q", name, u.DeathSpawn)
			}
		}
		for _, ab := range u.Abilities {
			if _, ok := AbilityByName(ab); !ok {
				t.Errorf("unit %q carries unknown ability %q", name, ab)
			}
		}
	}
}

func TestSpellTableConsistency(t *testing.T) {
	for _, name := range SpellNames() {
		s, ok := SpellByName(name)
		if !ok {
			t.Fatalf("spell %q listed but not found", name)
		}
		if s.Name != name {
			t.Errorf("spell %q has mismatched Name %q", name, s.Name)
		}
		if s.Effect == EffectGainReinforcement {
			if _, ok := UnitByName(s.Unit); !ok {
				t.Errorf("spell %q grants unknown unit %q", name, s.Unit)
			}
		}
	}
}

func TestSorceryPower(t *testing.T) {
	if Sorcery.SorceryPower() != 0 {
		t.Error("sorcery should provide no discard power")
	}
	if Cantrip.SorceryPower() != 1 {
		t.Error("cantrip should power one sorcery")
	}
	if DoubleCantrip.SorceryPower() != 2 {
		t.Error("double cantrip should power two sorceries")
	}
}

func TestMapGeometry(t *testing.T) {
	for _, name := range MapNames() {
		m, ok := MapByName(name)
		if !ok {
			t.Fatalf("map %q listed but not found", name)
		}
		for _, w := range m.Water {
			if !m.Contains(w) {
				t.Errorf("map %q: water hex %v off map", name, w)
			}
			if m.TerrainAt(w) != Water {
				t.Errorf("map %q: hex %v should be water", name, w)
			}
		}
		for _, g := range m.Graveyards {
			if !m.Contains(g) {
				t.Errorf("map %q: graveyard hex %v off map", name, g)
			}
			if m.TerrainAt(g) != Graveyard {
				t.Errorf("map %q: hex %v should be graveyard", name, g)
			}
		}
		for i, s := range m.Starts {
			if !m.Contains(s) {
				t.Errorf("map %q: start %d at %v off map", name, i, s)
			}
			if m.TerrainAt(s) != Ground {
				t.Errorf("map %q: start %d at %v not on ground", name, i, s)
			}
		}
	}
}
