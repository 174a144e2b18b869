package cycle

// Phase of the hormonal cycle. Used as a grouping label everywhere:
// scheduling scores, calendar cells, insights prompts.
type Phase string

const (
	Menstrual  Phase = "menstrual"
	Follicular Phase = "follicular"
	Ovulatory  Phase = "ovulatory"
	Luteal     Phase = "luteal"
)

type TaskType string

const (
	Creative       TaskType = "creative"
	Analytical     TaskType = "analytical"
	Physical       TaskType = "physical"
	Social         TaskType = "social"
	Administrative TaskType = "administrative"
	Strategic      TaskType = "strategic"
	DetailOriented TaskType = "detail_oriented"
	Communication  TaskType = "communication"
	Learning       TaskType = "learning"
	Reflection     TaskType = "reflection"
)

// Profile describes what a phase is like. Levels are 1..10.
type Profile struct {
	Phase           Phase    `json:"phase"`
	DayFrom         int      `json:"-"`
	DayTo           int      `json:"-"` // 0 = open-ended (luteal)
	EnergyLevel     int      `json:"energy_level"`
	FocusLevel      int      `json:"focus_level"`
	CreativityLevel int      `json:"creativity_level"`
	SocialEnergy    int      `json:"social_energy"`
	Analytical      int      `json:"analytical_thinking"`
	PhysicalEnergy  int      `json:"physical_energy"`
	Characteristics []string `json:"characteristics"`
}

// Phase windows are fixed day counts, independent of cycle length.
// Anything past day 16 is luteal.
var Profiles = map[Phase]Profile{
	Menstrual: {
		Phase:           Menstrual,
		DayFrom:         1,
		DayTo:           5,
		EnergyLevel:     3,
		FocusLevel:      6,
		CreativityLevel: 4,
		SocialEnergy:    2,
		Analytical:      7,
		PhysicalEnergy:  2,
		Characteristics: []string{
			"Introspective and reflective",
			"Good for planning and organizing",
			"Lower energy but high focus",
			"Excellent for detail-oriented work",
			"Good time for analysis and evaluation",
		},
	},
	Follicular: {
		Phase:           Follicular,
		DayFrom:         6,
		DayTo:           13,
		EnergyLevel:     7,
		FocusLevel:      8,
		CreativityLevel: 9,
		SocialEnergy:    6,
		Analytical:      8,
		PhysicalEnergy:  7,
		Characteristics: []string{
			"Rising energy and optimism",
			"Peak creativity and innovation",
			"Great for new projects",
			"High learning capacity",
			"Good for problem-solving",
		},
	},
	Ovulatory: {
		Phase:           Ovulatory,
		DayFrom:         14,
		DayTo:           16,
		EnergyLevel:     9,
		FocusLevel:      7,
		CreativityLevel: 8,
		SocialEnergy:    10,
		Analytical:      6,
		PhysicalEnergy:  9,
		Characteristics: []string{
			"Peak energy and confidence",
			"Excellent for communication",
			"Great for presentations and meetings",
			"High social energy",
			"Perfect for networking and collaboration",
		},
	},
	Luteal: {
		Phase:           Luteal,
		DayFrom:         17,
		DayTo:           0,
		EnergyLevel:     5,
		FocusLevel:      9,
		CreativityLevel: 5,
		SocialEnergy:    4,
		Analytical:      9,
		PhysicalEnergy:  4,
		Characteristics: []string{
			"High attention to detail",
			"Excellent for administrative tasks",
			"Good for editing and reviewing",
			"Strong analytical thinking",
			"Perfect for completing projects",
		},
	},
}

// Optimization maps a task type to the phases it lands best in.
type Optimization struct {
	TaskType      TaskType `json:"task_type"`
	OptimalPhases []Phase  `json:"optimal_phases"`
	EnergyLevel   int      `json:"energy_requirement"`
	FocusLevel    int      `json:"focus_requirement"`
	Description   string   `json:"description"`
}

var Optimizations = []Optimization{
	{Creative, []Phase{Follicular, Ovulatory}, 8, 7, "Creative work, brainstorming, design, writing"},
	{Analytical, []Phase{Menstrual, Luteal}, 6, 9, "Data analysis, research, problem-solving"},
	{Physical, []Phase{Follicular, Ovulatory}, 8, 6, "Exercise, physical activities, active tasks"},
	{Social, []Phase{Ovulatory}, 9, 7, "Meetings, presentations, networking, collaboration"},
	{Administrative, []Phase{Luteal, Menstrual}, 5, 9, "Admin tasks, organizing, filing, data entry"},
	{Strategic, []Phase{Menstrual, Follicular}, 6, 8, "Planning, strategy, goal setting"},
	{DetailOriented, []Phase{Luteal, Menstrual}, 5, 10, "Editing, proofreading, quality control"},
	{Communication, []Phase{Ovulatory, Follicular}, 8, 7, "Calls, emails, presentations, negotiations"},
	{Learning, []Phase{Follicular}, 7, 8, "Learning new skills, training, studying"},
	{Reflection, []Phase{Menstrual}, 3, 8, "Reflection, journaling, evaluation, planning"},
}

// PhaseForDay maps a 1-based cycle day onto its phase window.
func PhaseForDay(day int) Phase {
	switch {
	case day >= 1 && day <= 5:
		return Menstrual
	case day <= 13:
		return Follicular
	case day <= 16:
		return Ovulatory
	default:
		return Luteal
	}
}

// OptimizationFor returns the optimization row for a task type, if any.
func OptimizationFor(t TaskType) (Optimization, bool) {
	for _, opt := range Optimizations {
		if opt.TaskType == t {
			return opt, true
		}
	}
	return Optimization{}, false
}

// OptimalTaskTypes lists task types that fit a phase.
func OptimalTaskTypes(p Phase) []Optimization {
	var out []Optimization
	for _, opt := range Optimizations {
		for _, ph := range opt.OptimalPhases {
			if ph == p {
				out = append(out, opt)
				break
			}
		}
	}
	return out
}

// ValidTaskType reports whether t is one of the known task types.
func ValidTaskType(t TaskType) bool {
	_, ok := OptimizationFor(t)
	return ok
}
