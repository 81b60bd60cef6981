package output

import (
	"strconv"
	"strings"

	"github.com/agentstation/pagetree/pkg/catalog"
	"github.com/agentstation/pagetree/pkg/flatten"
	"github.com/agentstation/pagetree/pkg/regions"
	pkgsync "github.com/agentstation/pagetree/pkg/sync"
)

// Entries renders catalog or context entries.
type Entries []catalog.Entry

// Table implements Tabular.
func (e Entries) Table(wide bool) Data {
	data := Data{Headers: []string{"ID", "Name", "Group", "Props", "Slots"}}
	if wide {
		data.Headers = append(data.Headers, "Description")
	}
	for _, entry := range e {
		row := []string{
			entry.ID,
			entry.Name,
			entry.Group,
			strings.Join(entry.Props.Keys(), ", "),
			strings.Join(entry.Slots.Keys(), ", "),
		}
		if wide {
			row = append(row, entry.Description)
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

// Operations renders a compile result, one row per ADD.
type Operations flatten.Result

// Table implements Tabular.
func (o Operations) Table(wide bool) Data {
	data := Data{Headers: []string{"Node Path", "Component", "Props"}}
	if wide {
		data.Headers = append(data.Headers, "Operation")
	}
	for _, batch := range o.Operations {
		for _, op := range batch.Components {
			row := []string{op.NodePath.String(), op.ID, strconv.Itoa(len(op.FieldValues))}
			if wide {
				row = append(row, batch.Operation)
			}
			data.Rows = append(data.Rows, row)
		}
	}
	return data
}

// Regions renders the regions of a page layout.
type Regions []regions.Region

// Table implements Tabular.
func (r Regions) Table(bool) Data {
	data := Data{
		Headers:         []string{"Region", "Index", "Description"},
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft},
	}
	for _, region := range r {
		data.Rows = append(data.Rows, []string{region.Name, strconv.Itoa(region.NodePathPrefix), region.Description})
	}
	return data
}

// SyncResult renders the per-source changes of a sync.
type SyncResult pkgsync.Result

// Table implements Tabular.
func (s SyncResult) Table(wide bool) Data {
	data := Data{
		Headers:         []string{"Source", "Added", "Updated", "Removed"},
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignRight},
	}
	result := pkgsync.Result(s)
	for _, kind := range result.Kinds() {
		sr := s.SourceResults[kind]
		row := []string{string(kind), strconv.Itoa(len(sr.Added)), strconv.Itoa(len(sr.Updated)), strconv.Itoa(len(sr.Removed))}
		if wide {
			row = []string{string(kind), strings.Join(sr.Added, ", "), strings.Join(sr.Updated, ", "), strings.Join(sr.Removed, ", ")}
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}
