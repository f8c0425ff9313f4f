package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/orchestrators/combat"
	"github.com/oakhaven/emberquest/internal/orchestrators/session"
	"github.com/oakhaven/emberquest/internal/rules/levelup"
)

const helpText = `Commands:
  look                     describe your surroundings
  map                      show the discovered world
  go <direction>           walk north, south, east, or west
  talk <npc>               speak to someone here
  wares <npc>              list a merchant's stock
  buy <npc> <item>         buy from a merchant
  sell <npc> <item>        sell to a merchant
  take <item> / drop <item>
  use <item>               use an item outside combat
  equip <item> / unequip <item>
  skills                   list skills you can see
  learn <skill>            spend skill points
  stats                    show your character
  attack <target>          combat: basic attack
  cast <skill> [target]    combat: use an active skill
  item <item> [target]     combat: use an item
  flee                     combat: try to retreat
  save <slot> / load <slot> / slots
  quit`

func dispatch(ctx context.Context, sess *session.GameSession, fields []string) {
	var (
		msg string
		err error
	)
	switch fields[0] {
	case "help":
		fmt.Println(helpText)
		return
	case "look":
		msg, err = sess.Look()
	case "map":
		msg = sess.MapView()
	case "go", "move":
		if len(fields) < 2 {
			err = fmt.Errorf("go where?")
			break
		}
		msg, err = sess.Move(ctx, entities.Direction(fields[1]))
	case "talk":
		msg, err = withArg(fields, "talk to whom?", sess.Talk)
	case "wares":
		if len(fields) < 2 {
			err = fmt.Errorf("whose wares?")
			break
		}
		msg, err = renderWares(sess, fields[1])
	case "buy", "sell":
		if len(fields) < 3 {
			err = fmt.Errorf("%s <npc> <item>", fields[0])
			break
		}
		if fields[0] == "buy" {
			msg, err = sess.Buy(fields[1], fields[2])
		} else {
			msg, err = sess.Sell(fields[1], fields[2])
		}
	case "take":
		msg, err = withArg(fields, "take what?", sess.Take)
	case "drop":
		msg, err = withArg(fields, "drop what?", sess.Drop)
	case "use":
		msg, err = withArg(fields, "use what?", sess.UseItem)
	case "equip":
		msg, err = withArg(fields, "equip what?", sess.Equip)
	case "unequip":
		msg, err = withArg(fields, "unequip what?", sess.Unequip)
	case "skills":
		msg = renderSkills(sess)
	case "learn":
		if len(fields) < 2 {
			err = fmt.Errorf("learn what?")
			break
		}
		if err = sess.LearnSkill(fields[1]); err == nil {
			msg = fmt.Sprintf("You learn %s.", fields[1])
		}
	case "stats":
		msg = renderStats(sess)
	case "attack", "cast", "item", "flee":
		msg, err = combatCommand(ctx, sess, fields)
	case "save":
		if len(fields) < 2 {
			err = fmt.Errorf("save to which slot?")
			break
		}
		msg, err = sess.SaveGame(ctx, fields[1])
	case "load":
		if len(fields) < 2 {
			err = fmt.Errorf("load which slot?")
			break
		}
		msg, err = sess.LoadGame(ctx, fields[1])
	case "slots":
		msg, err = renderSlots(ctx, sess)
	default:
		err = fmt.Errorf("unknown command %q, try 'help'", fields[0])
	}

	if err != nil {
		fmt.Println(err.Error())
		return
	}
	if msg != "" {
		fmt.Println(msg)
	}
}

func withArg(fields []string, usage string, fn func(string) (string, error)) (string, error) {
	if len(fields) < 2 {
		return "", fmt.Errorf("%s", usage)
	}
	return fn(fields[1])
}

func combatCommand(ctx context.Context, sess *session.GameSession, fields []string) (string, error) {
	action := combat.Action{}
	switch fields[0] {
	case "attack":
		action.Kind = combat.ActionAttack
		action.TargetID = defaultTarget(sess, fields, 1)
	case "cast":
		if len(fields) < 2 {
			return "", fmt.Errorf("cast which skill?")
		}
		action.Kind = combat.ActionUseSkill
		action.SkillID = fields[1]
		action.TargetID = defaultTarget(sess, fields, 2)
	case "item":
		if len(fields) < 2 {
			return "", fmt.Errorf("use which item?")
		}
		action.Kind = combat.ActionUseItem
		action.ItemID = fields[1]
		action.TargetID = defaultTarget(sess, fields, 2)
	case "flee":
		action.Kind = combat.ActionRetreat
	}

	out, err := sess.CombatAction(ctx, action)
	if err != nil {
		return "", err
	}
	return strings.Join(out.Log, "\n"), nil
}

// defaultTarget picks the named monster, falling back to the first living
// one so "attack" alone works in single-monster fights.
func defaultTarget(sess *session.GameSession, fields []string, idx int) string {
	if len(fields) > idx {
		return fields[idx]
	}
	enc := sess.Encounter()
	if enc == nil {
		return ""
	}
	if alive := enc.AliveMonsters(); len(alive) > 0 {
		return alive[0].ID
	}
	return ""
}

// settleLevelUps walks the player through pending level-up choices and the
// forced class pick, blocking until each is answered.
func settleLevelUps(scanner *bufio.Scanner, sess *session.GameSession) {
	for ev := sess.PendingLevelUp(); ev != nil; ev = sess.PendingLevelUp() {
		fmt.Printf("Level %d! Choose a bonus:\n", ev.TargetLevel)
		for _, c := range levelup.Choices() {
			fmt.Printf("  %s - %s\n", c, c.Label())
		}
		fmt.Print("choice > ")
		if !scanner.Scan() {
			return
		}
		choice := levelup.Choice(strings.TrimSpace(strings.ToLower(scanner.Text())))
		if err := sess.ResolveLevelUp(choice); err != nil {
			fmt.Println(err.Error())
		}
	}

	prompt := sess.ClassPrompt()
	if prompt == nil {
		return
	}
	fmt.Println("The time has come to choose your calling:")
	for _, class := range prompt.Classes {
		fmt.Printf("  %s - %s\n", class.ID, class.Name)
	}
	for {
		fmt.Print("class > ")
		if !scanner.Scan() {
			return
		}
		id := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if err := sess.ChooseClass(id); err != nil {
			fmt.Println(err.Error())
			continue
		}
		fmt.Printf("You are now a %s.\n", id)
		return
	}
}

func renderWares(sess *session.GameSession, npcID string) (string, error) {
	wares, err := sess.Wares(npcID)
	if err != nil {
		return "", err
	}
	if len(wares) == 0 {
		return "Nothing for sale.", nil
	}
	var b strings.Builder
	for _, w := range wares {
		fmt.Fprintf(&b, "%-20s %4d gold  (%d in stock)\n", w.Item.Name, w.Price, w.Count)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func renderSkills(sess *session.GameSession) string {
	skills := sess.VisibleSkills()
	if len(skills) == 0 {
		return "No skills in reach."
	}
	player := sess.Player()
	var b strings.Builder
	fmt.Fprintf(&b, "Skill points: %d\n", player.SkillPoints)
	for _, sk := range skills {
		mark := " "
		if player.HasLearned(sk.ID) {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s %-20s (%s, cost %d)\n", mark, sk.ID, sk.Kind, sk.Cost)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderStats(sess *session.GameSession) string {
	p := sess.Player()
	eff := sess.EffectiveStats()
	var b strings.Builder
	fmt.Fprintf(&b, "%s, level %d", p.Name, p.Level)
	if p.ClassID != "" {
		fmt.Fprintf(&b, " (%s)", p.ClassID)
	}
	fmt.Fprintf(&b, "\nHP %d/%d  Attack %d  Crit %.0f%%\n", p.HP, eff.MaxHP, eff.AttackPower, eff.CritChance*100)
	fmt.Fprintf(&b, "XP %d/%d  Gold %d  Skill points %d", p.XP, p.XPToNext, p.Gold, p.SkillPoints)
	if len(p.Inventory) > 0 {
		fmt.Fprintf(&b, "\nCarrying:")
		for _, line := range sess.InventoryLines() {
			fmt.Fprintf(&b, "\n  %s", line)
		}
	}
	return b.String()
}

func renderSlots(ctx context.Context, sess *session.GameSession) (string, error) {
	slots, err := sess.SavedSlots(ctx)
	if err != nil {
		return "", err
	}
	if len(slots) == 0 {
		return "No saved games.", nil
	}
	var b strings.Builder
	for _, s := range slots {
		fmt.Fprintf(&b, "%s  (saved %s)\n", s.Slot, s.SavedAt.Format("2006-01-02 15:04"))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
