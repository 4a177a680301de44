package pipeline

// Reached reports whether metric has met the goal.
func Reached(metric, goal float64) bool {
	return metric >= goal
}

// GoalEvaluator latches the first crossing of the goal within a run segment.
type GoalEvaluator struct {
	goal    float64
	reached bool
}

func NewGoalEvaluator(goal float64) *GoalEvaluator {
	return &GoalEvaluator{goal: goal}
}

// Observe checks the latest metric and returns true only on the below-to-reached transition.
func (g *GoalEvaluator) Observe(metric float64) bool {
	if g.reached || !Reached(metric, g.goal) {
		return false
	}
	g.reached = true
	return true
}

// Reached reports whether the goal has fired in this segment.
func (g *GoalEvaluator) Reached() bool {
	return g.reached
}

// Goal returns the target.
func (g *GoalEvaluator) Goal() float64 {
	return g.goal
}

// Progress is metric/goal, for display.
func (g *GoalEvaluator) Progress(metric float64) float64 {
	if g.goal <= 0 {
		return 0
	}
	return metric / g.goal
}

// Reset re-arms the evaluator for a new segment.
func (g *GoalEvaluator) Reset() {
	g.reached = false
}
