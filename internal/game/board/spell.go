package board

import (
	"github.com/jonathanpaulson/minions-sub000/internal/game/content"
	"github.com/jonathanpaulson/minions-sub000/internal/game/hex"
)

// spellResolution carries everything checkSpell resolved so applySpell does
// not repeat the lookups.
type spellResolution struct {
	def          *content.SpellDef
	fromRevealed bool
	discardDef   *content.SpellDef // set when the discard comes from hand
	target       *Piece
	tile         *Tile
}

func (s *BoardState) findCard(cards []SpellCard, id SpellID) int {
	for i, c := range cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// checkSpell validates playing a spell card: the card must be in hand or
// revealed, the target must satisfy the spell's predicate, and a sorcery must
// be powered by a discard with remaining sorcery power.
func (s *BoardState) checkSpell(a PlayerAction) (*spellResolution, error) {
	side := s.SideToMove
	res := &spellResolution{}

	idx := s.findCard(s.Hand[side], a.Spell)
	if idx < 0 {
		idx = s.findCard(s.Revealed[side], a.Spell)
		if idx < 0 {
			return nil, illegalf(SpellOrAbilityIllegal, "spell #%d is not available", a.Spell)
		}
		res.fromRevealed = true
	}
	var name string
	if res.fromRevealed {
		name = s.Revealed[side][idx].Name
	} else {
		name = s.Hand[side][idx].Name
	}
	def, ok := content.SpellByName(name)
	if !ok {
		return nil, invariantf("card #%d references unknown spell %q", a.Spell, name)
	}
	res.def = def

	if def.Kind == content.Sorcery {
		if a.Discard == 0 {
			return nil, illegalf(SpellOrAbilityIllegal, "%s is a sorcery and needs a discard", name)
		}
		if a.Discard == a.Spell {
			return nil, illegalf(SpellOrAbilityIllegal, "a spell cannot power itself")
		}
		if di := s.findCard(s.Hand[side], a.Discard); di >= 0 {
			dDef, ok := content.SpellByName(s.Hand[side][di].Name)
			if !ok {
				return nil, invariantf("card #%d references unknown spell %q", a.Discard, s.Hand[side][di].Name)
			}
			if dDef.Kind.SorceryPower() == 0 {
				return nil, illegalf(SpellOrAbilityIllegal, "%s cannot power a sorcery", dDef.Name)
			}
			res.discardDef = dDef
		} else if s.discardPower[side][a.Discard] > 0 {
			// Already-discarded cantrip with power to spare.
		} else {
			return nil, illegalf(SpellOrAbilityIllegal, "discard #%d has no sorcery power left", a.Discard)
		}
	}

	target, tile, err := s.resolveTarget(def.Target, a, side)
	if err != nil {
		return nil, err
	}
	if err := checkRemovalTarget(def.Effect, target); err != nil {
		return nil, err
	}
	res.target, res.tile = target, tile
	return res, nil
}

// resolveTarget applies a targeting predicate to the action's target fields.
func (s *BoardState) resolveTarget(kind content.TargetKind, a PlayerAction, side Side) (*Piece, *Tile, error) {
	switch kind {
	case content.TargetNone:
		return nil, nil, nil
	case content.TargetTile:
		tile, ok := s.Tiles[a.TargetLoc]
		if !ok {
			return nil, nil, illegalf(SpellOrAbilityIllegal, "hex (%d,%d) is off the map", a.TargetLoc.Q, a.TargetLoc.R)
		}
		return nil, tile, nil
	}
	p, ok := s.PieceBySpec(a.TargetPiece)
	if !ok {
		return nil, nil, illegalf(SpellOrAbilityIllegal, "no such target %s", a.TargetPiece)
	}
	switch kind {
	case content.TargetFriendlyPiece:
		if p.Side != side {
			return nil, nil, illegalf(SpellOrAbilityIllegal, "%s is not friendly", a.TargetPiece)
		}
	case content.TargetEnemyPiece:
		if p.Side == side {
			return nil, nil, illegalf(SpellOrAbilityIllegal, "%s is not an enemy", a.TargetPiece)
		}
	}
	return p, nil, nil
}

func checkRemovalTarget(effect content.EffectKind, target *Piece) error {
	if target == nil {
		return nil
	}
	if effect == content.EffectKillTarget || effect == content.EffectUnsummonTarget {
		if target.Stats.Persistent {
			return illegalf(SpellOrAbilityIllegal, "%s is persistent", target.Stats.Name)
		}
	}
	return nil
}

func (s *BoardState) applySpell(a PlayerAction, res *spellResolution) {
	side := s.SideToMove
	if res.fromRevealed {
		idx := s.findCard(s.Revealed[side], a.Spell)
		s.Revealed[side] = append(s.Revealed[side][:idx], s.Revealed[side][idx+1:]...)
	} else {
		idx := s.findCard(s.Hand[side], a.Spell)
		s.Hand[side] = append(s.Hand[side][:idx], s.Hand[side][idx+1:]...)
	}
	if res.def.Kind == content.Sorcery {
		if res.discardDef != nil {
			di := s.findCard(s.Hand[side], a.Discard)
			s.Hand[side] = append(s.Hand[side][:di], s.Hand[side][di+1:]...)
			s.discardPower[side][a.Discard] = res.discardDef.Kind.SorceryPower() - 1
		} else {
			s.discardPower[side][a.Discard]--
		}
	}
	s.applyEffect(res.def.Effect, res.def.Amount, res.def.Duration, res.def.Unit, res.target, res.tile, side)
}

// checkAbility validates a once-per-turn ability use by a piece.
func (s *BoardState) checkAbility(a PlayerAction) (*Piece, *content.AbilityDef, error) {
	caster, ok := s.PieceBySpec(a.Caster)
	if !ok {
		return nil, nil, illegalf(SpellOrAbilityIllegal, "no such piece %s", a.Caster)
	}
	if caster.Side != s.SideToMove {
		return nil, nil, illegalf(SpellOrAbilityIllegal, "%s belongs to side %s", a.Caster, caster.Side)
	}
	has := false
	for _, name := range caster.Stats.Abilities {
		if name == a.Ability {
			has = true
			break
		}
	}
	if !has {
		return nil, nil, illegalf(SpellOrAbilityIllegal, "%s has no ability %q", caster.Stats.Name, a.Ability)
	}
	if caster.UsedAbilities[a.Ability] {
		return nil, nil, illegalf(SpellOrAbilityIllegal, "%s already used %q this turn", a.Caster, a.Ability)
	}
	def, ok := content.AbilityByName(a.Ability)
	if !ok {
		return nil, nil, invariantf("unknown ability %q on %s", a.Ability, caster.Stats.Name)
	}
	target, _, err := s.resolveTarget(def.Target, a, s.SideToMove)
	if err != nil {
		return nil, nil, err
	}
	if target != nil && hex.Distance(caster.Loc, target.Loc) > def.Range {
		return nil, nil, illegalf(SpellOrAbilityIllegal, "%s is out of range of %q", a.TargetPiece, a.Ability)
	}
	if err := checkRemovalTarget(def.Effect, target); err != nil {
		return nil, nil, err
	}
	return caster, def, nil
}

func (s *BoardState) applyAbility(a PlayerAction, caster *Piece, def *content.AbilityDef) {
	if caster.UsedAbilities == nil {
		caster.UsedAbilities = make(map[string]bool)
	}
	caster.UsedAbilities[a.Ability] = true
	target := caster
	if def.Target != content.TargetNone {
		target, _ = s.PieceBySpec(a.TargetPiece)
	}
	s.applyEffect(def.Effect, def.Amount, def.Duration, "", target, nil, s.SideToMove)
}

// applyEffect resolves a spell or ability effect against its target.
func (s *BoardState) applyEffect(effect content.EffectKind, amount, duration int, unit string, target *Piece, tile *Tile, side Side) {
	switch effect {
	case content.EffectDamage:
		target.Damage += amount
		if target.Damage >= target.Defense() {
			s.killPiece(target)
		}
	case content.EffectHeal:
		target.Damage -= amount
		if target.Damage < 0 {
			target.Damage = 0
		}
	case content.EffectKillTarget:
		s.killPiece(target)
	case content.EffectUnsummonTarget:
		s.unsummonPiece(target)
	case content.EffectAttackMod:
		target.Mods = append(target.Mods, Mod{Kind: ModAttack, Amount: amount, Turns: duration})
	case content.EffectDefenseMod:
		target.Mods = append(target.Mods, Mod{Kind: ModDefense, Amount: amount, Turns: duration})
	case content.EffectMoveMod:
		target.Mods = append(target.Mods, Mod{Kind: ModMove, Amount: amount, Turns: duration})
	case content.EffectCleanse:
		target.Mods = nil
	case content.EffectGainReinforcement:
		s.Reinforcements[side][unit]++
	case content.EffectTileUnpassable:
		tile.Mods = append(tile.Mods, Mod{Kind: ModUnpassable, Turns: duration})
	}
}
