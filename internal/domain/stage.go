package domain

// Stage is a step of the extract-and-download sequence
type Stage int

const (
	StageClassify Stage = iota
	StageCheckConfig
	StageExtract
	StagePick
	StageDownload
	StageDone
)

var stageNames = map[Stage]string{
	StageClassify:    "Detecting platform",
	StageCheckConfig: "Checking settings",
	StageExtract:     "Extracting videos",
	StagePick:        "Picking list and range",
	StageDownload:    "Downloading",
	StageDone:        "Done",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "Unknown stage"
}

// Next returns the following stage; Done is terminal
func (s Stage) Next() Stage {
	if s >= StageDone {
		return StageDone
	}
	return s + 1
}
