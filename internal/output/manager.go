package output

import (
	"fmt"
	"io"
	"strings"
	"time"
)

type JobOutput struct {
	ID       string
	URL      string
	Status   string
	Message  string
	Error    error
	Started  time.Time
	Finished time.Time
}

type ErrorReport struct {
	URL   string
	Error error
	Time  time.Time
}

// Manager keeps the outcome of every job in a run and prints the closing
// summary. Jobs run one at a time, so no locking is needed.
type Manager struct {
	jobs   []*JobOutput
	errors []ErrorReport
	out    io.Writer
}

func NewManager(out io.Writer) *Manager {
	return &Manager{out: out}
}

func (m *Manager) Register(id, url string) *JobOutput {
	job := &JobOutput{
		ID:      id,
		URL:     url,
		Status:  "pending",
		Started: time.Now(),
	}
	m.jobs = append(m.jobs, job)
	return job
}

func (m *Manager) Complete(job *JobOutput, message string) {
	if message == "" {
		message = fmt.Sprintf("Completed %s", job.URL)
	}
	job.Message = message
	job.Status = "success"
	job.Finished = time.Now()
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, successStyle.Render(StyleSymbols["pass"]+" "+message))
}

func (m *Manager) ReportError(job *JobOutput, err error) {
	job.Status = "error"
	job.Error = err
	job.Finished = time.Now()
	m.errors = append(m.errors, ErrorReport{URL: job.URL, Error: err, Time: job.Finished})
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, errorStyle.Render(StyleSymbols["fail"]+" "+fmt.Sprintf("Failed %s", job.URL)))
}

func (m *Manager) Failures() int {
	return len(m.errors)
}

func (m *Manager) displayErrors() {
	if len(m.errors) == 0 {
		return
	}
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, strings.Repeat(" ", 2)+errorStyle.Bold(true).Render("Errors:"))
	for i, report := range m.errors {
		fmt.Fprintf(m.out, "%s%s %s %s\n",
			strings.Repeat(" ", 2+2),
			errorStyle.Render(fmt.Sprintf("%d.", i+1)),
			debugStyle.Render(fmt.Sprintf("[%s]", report.Time.Format("15:04:05"))),
			errorStyle.Render(fmt.Sprintf("URL: %s", report.URL)))
		fmt.Fprintf(m.out, "%s%s\n", strings.Repeat(" ", 2+4), errorStyle.Render(fmt.Sprintf("Error: %v", report.Error)))
	}
}

func (m *Manager) ShowSummary() {
	fmt.Fprintln(m.out)
	var success int
	for _, job := range m.jobs {
		if job.Status == "success" {
			success++
		}
	}
	fmt.Fprintln(m.out, strings.Repeat(" ", 2)+successStyle.Render(fmt.Sprintf("Completed %d of %d", success, len(m.jobs))))
	if len(m.errors) > 0 {
		fmt.Fprintln(m.out, strings.Repeat(" ", 2)+errorStyle.Render(fmt.Sprintf("Failed %d of %d", len(m.errors), len(m.jobs))))
	}
	m.displayErrors()
	fmt.Fprintln(m.out)
}
