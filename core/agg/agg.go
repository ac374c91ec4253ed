// Package agg has aggregation logic for repository delivery data.
package agg

import (
	"sort"
	"time"

	"github.com/huangsam/doralens/internal/contract"
	"github.com/huangsam/doralens/schema"
)

// Options selects between the formula variants.
type Options struct {
	DeploymentSource schema.DeploymentSource
	FailureSignal    schema.FailureSignal
	DefectLabel      string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		DeploymentSource: schema.AutoSource,
		FailureSignal:    schema.DefectsSignal,
		DefectLabel:      contract.DefaultDefectLabel,
	}
}

// OptionsFromConfig extracts the formula options from a validated config.
func OptionsFromConfig(cfg *contract.Config) Options {
	opts := Options{
		DeploymentSource: cfg.DeploymentSource,
		FailureSignal:    cfg.FailureSignal,
		DefectLabel:      cfg.DefectLabel,
	}
	return opts.withDefaults()
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.DeploymentSource == "" {
		o.DeploymentSource = d.DeploymentSource
	}
	if o.FailureSignal == "" {
		o.FailureSignal = d.FailureSignal
	}
	if o.DefectLabel == "" {
		o.DefectLabel = d.DefectLabel
	}
	return o
}

// Aggregate reduces the whole record set into one scorecard.
// Commits without a resolvable author still count here.
func Aggregate(set schema.RecordSet, opts Options) schema.MetricSet {
	opts = opts.withDefaults()
	source := resolveSource(set, opts.DeploymentSource)
	shaDates := commitDatesBySHA(set.Commits)
	w := partition(set, opts.DefectLabel)

	m := compute(w, set.Window, shaDates, source, opts)
	m.Collaboration = aggregateCollaboration(w.windowPRs)
	return m
}

// ByContributor reduces the record set into one scorecard per contributor.
// The order is contributors as listed by the API, then any other record
// authors in lexical order.
func ByContributor(set schema.RecordSet, opts Options) []schema.ContributorMetric {
	opts = opts.withDefaults()
	source := resolveSource(set, opts.DeploymentSource)
	shaDates := commitDatesBySHA(set.Commits)
	all := partition(set, opts.DefectLabel)

	names := contributorNames(set.Contributors, all)
	results := make([]schema.ContributorMetric, 0, len(names))
	for _, name := range names {
		w := all.forAuthor(name)
		m := compute(w, set.Window, shaDates, source, opts)
		m.Collaboration = groupedCollaboration(w.qualifying)
		results = append(results, schema.ContributorMetric{Name: name, MetricSet: m})
	}
	return results
}

// compute applies the formulas shared by the grouped and ungrouped paths.
func compute(w windowed, window schema.TimeWindow, shaDates map[string]time.Time, source schema.DeploymentSource, opts Options) schema.MetricSet {
	return schema.MetricSet{
		DeploymentFrequency: deploymentFrequency(w, window, source),
		LeadTime:            leadTime(w.qualifying, shaDates),
		ChangeFailureRate:   changeFailureRate(w, opts.FailureSignal),
		TimeToRestore:       timeToRestore(w.defectsClosed),
		CodeQuality:         codeQuality(w.qualifying),
		Impact:              float64(len(w.closedIssues)),
		Growth:              float64(distinctFiles(w.commits)),
	}
}

// resolveSource decides once per record set which records count as deployments.
func resolveSource(set schema.RecordSet, source schema.DeploymentSource) schema.DeploymentSource {
	if source != schema.AutoSource {
		return source
	}
	for _, d := range set.Deployments {
		if set.Window.Contains(d.CreatedAt) {
			return schema.DeploymentsSource
		}
	}
	return schema.MergesSource
}

// ResolveSource reports which deployment source the options select for the set.
func ResolveSource(set schema.RecordSet, opts Options) schema.DeploymentSource {
	return resolveSource(set, opts.withDefaults().DeploymentSource)
}

// contributorNames lists API contributors first, then every other author seen in the window.
func contributorNames(contributors []schema.Contributor, w windowed) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, c := range contributors {
		if c.Login == "" {
			continue
		}
		if _, ok := seen[c.Login]; ok {
			continue
		}
		seen[c.Login] = struct{}{}
		names = append(names, c.Login)
	}

	var extra []string
	add := func(login string) {
		if login == "" {
			return
		}
		if _, ok := seen[login]; ok {
			return
		}
		seen[login] = struct{}{}
		extra = append(extra, login)
	}
	for _, c := range w.commits {
		add(c.Author)
	}
	for _, pr := range w.windowPRs {
		add(pr.Author)
	}
	for _, i := range w.issues {
		add(i.Author)
	}
	for _, d := range w.deployments {
		add(d.Creator)
	}
	sort.Strings(extra)

	return append(names, extra...)
}
