package feedback

import "time"

// Record is one submission, stored as <dir>/<COURSE>/<id>.yaml.
type Record struct {
	ID          string    `yaml:"id"`
	Course      string    `yaml:"course"`
	Student     string    `yaml:"student"`
	Feedback    string    `yaml:"feedback"`
	Words       int       `yaml:"words"`
	SubmittedAt time.Time `yaml:"submitted_at"`
}

// Listing is the readable records of one course, oldest first, plus the
// file names that could not be parsed.
type Listing struct {
	Course  string
	Records []Record
	Skipped []string
}
