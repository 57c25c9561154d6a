package engine

// Contract roles, ordered by expected minutes share.
const (
	RoleStar     = "Star"
	RoleStarter  = "Starter"
	RoleRotation = "Rotation"
	RoleRole     = "Role"
	RoleBench    = "Bench"
)

// Court positions. StarterPositions is the slot order used when setting the
// initial lineup; RedistributionPositions is the order foul-out minutes are
// handed out in (big men first, matching the original design).
var (
	StarterPositions        = []string{"PG", "SG", "SF", "PF", "C"}
	RedistributionPositions = []string{"C", "PF", "SF", "SG", "PG"}
)

// Player is the engine-side player: identity, the twenty scored attributes,
// per-match dynamic state and the full box-score counters. Attributes stay
// immutable for the whole match; fatigue is applied multiplicatively at read
// time through StaminaCoeff, so snapshotting a player is a plain copy.
type Player struct {
	ID          string
	Name        string
	Nationality string
	Grade       string // SSR > SS > S > A > B > C > G
	Role        string
	Position    string // live position for the current match
	Height      float64
	Age         int

	// Athletic
	AthStamina  float64
	AthStrength float64
	AthSpeed    float64
	AthJump     float64

	// Shooting
	ShotTouch    float64
	ShotRelease  float64
	ShotAccuracy float64
	ShotRange    float64

	// Offense
	OffPass    float64
	OffDribble float64
	OffHandle  float64
	OffMove    float64

	// Defense
	DefRebound float64
	DefBoxout  float64
	DefContest float64
	DefDisrupt float64

	// Mental / talent
	TalentOffIQ  float64
	TalentDefIQ  float64
	TalentHealth float64
	TalentLuck   float64

	// Dynamic per-match state
	CurrentStamina float64
	StaminaCoeff   float64
	Fouls          int
	IsFouledOut    bool
	SecondsPlayed  float64
	TargetSeconds  float64
	PosScores      map[string]float64

	// Box score
	Pts       int
	Reb       int
	Ast       int
	Stl       int
	Blk       int
	Tov       int
	FGA       int
	FGM       int
	TPA       int
	TPM       int
	FTA       int
	FTM       int
	ORB       int
	DRB       int
	FBMade    int
	FBAttempt int
	PlusMinus int
}

// attrGetters maps the flat config attribute names onto struct fields.
// The calculator goes through this table; unknown names contribute 0.
var attrGetters = map[string]func(*Player) float64{
	"ath_stamina":   func(p *Player) float64 { return p.AthStamina },
	"ath_strength":  func(p *Player) float64 { return p.AthStrength },
	"ath_speed":     func(p *Player) float64 { return p.AthSpeed },
	"ath_jump":      func(p *Player) float64 { return p.AthJump },
	"shot_touch":    func(p *Player) float64 { return p.ShotTouch },
	"shot_release":  func(p *Player) float64 { return p.ShotRelease },
	"shot_accuracy": func(p *Player) float64 { return p.ShotAccuracy },
	"shot_range":    func(p *Player) float64 { return p.ShotRange },
	"off_pass":      func(p *Player) float64 { return p.OffPass },
	"off_dribble":   func(p *Player) float64 { return p.OffDribble },
	"off_handle":    func(p *Player) float64 { return p.OffHandle },
	"off_move":      func(p *Player) float64 { return p.OffMove },
	"def_rebound":   func(p *Player) float64 { return p.DefRebound },
	"def_boxout":    func(p *Player) float64 { return p.DefBoxout },
	"def_contest":   func(p *Player) float64 { return p.DefContest },
	"def_disrupt":   func(p *Player) float64 { return p.DefDisrupt },
	"talent_offiq":  func(p *Player) float64 { return p.TalentOffIQ },
	"talent_defiq":  func(p *Player) float64 { return p.TalentDefIQ },
	"talent_health": func(p *Player) float64 { return p.TalentHealth },
	"talent_luck":   func(p *Player) float64 { return p.TalentLuck },
	"height":        func(p *Player) float64 { return p.Height },
}

// AttrValue returns the stamina-scaled attribute value. Height is the one
// attribute fatigue does not shrink.
func (p *Player) AttrValue(name string) float64 {
	getter, ok := attrGetters[name]
	if !ok {
		return 0
	}
	v := getter(p)
	if name != "height" {
		v *= p.StaminaCoeff
	}
	return v
}

// ResetMatchState zeroes everything a fresh match needs zeroed while keeping
// identity and attributes.
func (p *Player) ResetMatchState() {
	p.CurrentStamina = 100.0
	p.StaminaCoeff = 1.0
	p.Fouls = 0
	p.IsFouledOut = false
	p.SecondsPlayed = 0
	p.TargetSeconds = 0
	p.PosScores = nil

	p.Pts, p.Reb, p.Ast, p.Stl, p.Blk, p.Tov = 0, 0, 0, 0, 0, 0
	p.FGA, p.FGM, p.TPA, p.TPM, p.FTA, p.FTM = 0, 0, 0, 0, 0, 0
	p.ORB, p.DRB, p.FBMade, p.FBAttempt, p.PlusMinus = 0, 0, 0, 0, 0
}

// ClonePlayer deep-copies a player with zeroed per-match state. Batch
// workers clone rosters so parallel matches stay independent.
func ClonePlayer(src *Player) *Player {
	cp := *src
	cp.PosScores = nil
	cp.ResetMatchState()
	return &cp
}
