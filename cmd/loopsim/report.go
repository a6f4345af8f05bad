package main

import (
	"io"
	"text/template"
	"time"

	"github.com/faid1253/whispersoftheloop/sim"
)

type Report struct {
	Chamber    string
	Frames     int64
	SimSeconds float64
	WallTime   time.Duration

	LoopsCompleted     int
	FragmentsCollected int
	FragmentsTotal     int

	Stats *sim.SchedulerStats
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Loop Simulation Report

## Run
- **Chamber:** {{.Chamber}}
- **Frames:** {{.Frames}} ({{printf "%.1f" .SimSeconds}}s simulated, {{.WallTime}} wall)
- **Loops completed:** {{.LoopsCompleted}}
- **Fragments:** {{.FragmentsCollected}}/{{.FragmentsTotal}}

## Systems ({{.Stats.SystemCount}}, {{.Stats.TotalExecutions}} executions)
{{range .Stats.Systems -}}
- **{{.Name}}:** avg {{.AvgDuration}} (min {{.MinDuration}}, max {{.MaxDuration}}, total {{.TotalDuration}})
{{end}}`

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
