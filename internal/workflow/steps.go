package workflow

// BuildStep 是引导式流程中的一个固定阶段。表在编译期写死，
// 进程生命周期内只读。
type BuildStep struct {
	Ordinal  int    `json:"ordinal"`
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Prompt   string `json:"prompt"`
}

// steps 按序号升序排列。Ordinal 从 1 开始，和持久化键里的序号一致。
var steps = []BuildStep{
	{
		Ordinal:  1,
		ID:       "kickoff",
		Title:    "Kickoff",
		Subtitle: "Plan what your resume needs to say",
		Prompt:   "List the three roles you want this resume to target and the strongest evidence you have for each.",
	},
	{
		Ordinal:  2,
		ID:       "summary-draft",
		Title:    "Summary Draft",
		Subtitle: "Write the opening paragraph",
		Prompt:   "Draft a 40-60 word professional summary that opens with an action verb and names one measurable win.",
	},
	{
		Ordinal:  3,
		ID:       "work-history",
		Title:    "Work History",
		Subtitle: "Capture roles with impact bullets",
		Prompt:   "For each role, write one bullet that quantifies the outcome (%, x, or k figures) rather than the activity.",
	},
	{
		Ordinal:  4,
		ID:       "projects",
		Title:    "Projects",
		Subtitle: "Show work that ships",
		Prompt:   "Pick one project with a live link. Describe what it does in one sentence and list its tech stack.",
	},
	{
		Ordinal:  5,
		ID:       "skills-audit",
		Title:    "Skills Audit",
		Subtitle: "Separate technical, soft and tooling skills",
		Prompt:   "Audit your skills into the three categories and cut anything you could not discuss in an interview.",
	},
	{
		Ordinal:  6,
		ID:       "score-review",
		Title:    "Score Review",
		Subtitle: "Work the readiness checklist",
		Prompt:   "Run the readiness score, then clear the top three suggestions it reports.",
	},
	{
		Ordinal:  7,
		ID:       "peer-feedback",
		Title:    "Peer Feedback",
		Subtitle: "Get one outside read",
		Prompt:   "Share the plain-text export with a peer and record the single most useful piece of feedback.",
	},
	{
		Ordinal:  8,
		ID:       "final-export",
		Title:    "Final Export",
		Subtitle: "Produce the deliverables",
		Prompt:   "Export the print layout, check it renders on one page, and attach a screenshot as evidence.",
	},
}

// StepCount 是阶段总数。
var StepCount = len(steps)

// Steps 返回阶段表的副本，调用方不能借此修改配置。
func Steps() []BuildStep {
	out := make([]BuildStep, len(steps))
	copy(out, steps)
	return out
}

// StepByOrdinal 按序号查表。
func StepByOrdinal(ordinal int) (BuildStep, bool) {
	if ordinal < 1 || ordinal > len(steps) {
		return BuildStep{}, false
	}
	return steps[ordinal-1], true
}
