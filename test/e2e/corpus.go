// Package e2e provides end-to-end tests with a generated corpus and multiple queries.
package e2e

import (
	"fmt"
	"strings"

	"github.com/Philosophiser/teams-agent-portico/internal/models"
)

// SeedDocument is one entry in the generated corpus (citation plus body text).
type SeedDocument struct {
	Citation string
	Body     string
}

// QueryCase pairs a query with the citation(s) that must appear in its search
// results. At least one of ExpectedCitations must be present.
type QueryCase struct {
	Query             string
	ExpectedCitations []string
	Description       string
}

// Corpus holds seed documents and query cases for end-to-end tests.
type Corpus struct {
	Documents    []SeedDocument
	Cases        []QueryCase
	TotalDocs    int
	TotalQueries int
}

// BuildCorpus returns a corpus of internal knowledge-base entries with varied
// content. Each entry carries a distinctive signature phrase so queries can
// assert the correct document ranks.
func BuildCorpus() *Corpus {
	docs := buildDocuments(40)
	cases := buildQueryCases(docs)
	return &Corpus{
		Documents:    docs,
		Cases:        cases,
		TotalDocs:    len(docs),
		TotalQueries: len(cases),
	}
}

func buildDocuments(n int) []SeedDocument {
	topics := []struct {
		citation string
		phrase   string
		body     string
	}{
		{"deploy-rollback", "rollback canary deployment", "Deployments ship through the pipeline in stages. The rollback canary deployment procedure promotes the previous release tag and drains the canary pool."},
		{"vpn-access", "vpn certificate renewal", "Remote access goes through the corporate vpn with device certificates. The vpn certificate renewal reminder fires fourteen days before expiry."},
		{"database-failover", "database failover replica", "The primary postgres instance replicates to two standbys. The database failover replica promotion repoints the connection string automatically."},
		{"incident-severity", "incident severity matrix", "Incidents are classified by impact and urgency. The incident severity matrix maps every class to a target response time."},
		{"oncall-handoff", "oncall handoff notes", "Rotations change every Monday at noon. The oncall handoff notes cover open alerts and pending followups."},
		{"release-train", "release train freeze", "Releases leave on a weekly cadence. The release train freeze starts Thursday evening and lifts after the smoke run."},
		{"expense-policy", "expense reimbursement receipts", "Expenses are filed in the finance portal. The expense reimbursement receipts rule requires originals above fifty dollars."},
		{"travel-booking", "travel booking approval", "Trips are arranged in the agency tool. The travel booking approval chain ends with the department head."},
		{"api-gateway", "gateway rate limits", "The edge gateway fronts every public route. The gateway rate limits reset per minute and return status 429 when exceeded."},
		{"staging-refresh", "staging snapshot refresh", "Staging mirrors production data weekly. The staging snapshot refresh scrubs customer identifiers before import."},
		{"backup-restore", "backup restore drill", "Backups run nightly to offsite storage. The backup restore drill runs quarterly and measures recovery time."},
		{"secrets-rotation", "secrets rotation vault", "Service credentials never live in code. The secrets rotation vault policy rotates keys every ninety days."},
		{"log-retention", "log retention archive", "Application logs stream to the central store. The log retention archive moves entries older than one month to cold storage."},
		{"latency-dashboard", "latency dashboard percentiles", "Service health shows on shared dashboards. The latency dashboard percentiles track p50 p95 and p99 per route."},
		{"alert-routing", "alert routing pager", "Alerts fan out by team ownership. The alert routing pager escalates unacknowledged pages after fifteen minutes."},
		{"capacity-planning", "capacity forecast autoscaling", "Capacity reviews happen each quarter. The capacity forecast autoscaling targets keep utilization under seventy percent."},
		{"postmortem-template", "postmortem timeline actions", "Every outage gets a written retrospective. The postmortem timeline actions section assigns owners and due dates."},
		{"access-review", "quarterly access review", "Permissions are audited on a schedule. The quarterly access review removes grants unused for sixty days."},
		{"laptop-setup", "laptop disk encryption", "New machines are imaged by the service desk. The laptop disk encryption check must pass before first login."},
		{"room-booking", "room booking calendar", "Rooms are reserved in the shared calendar. The room booking calendar releases holds after ten idle minutes."},
		{"code-review-policy", "review approvals merge", "Changes land through pull requests. The review approvals merge rule needs two signoffs on protected branches."},
		{"branching-model", "trunk branching model", "Work happens on short lived branches. The trunk branching model keeps main releasable at all times."},
		{"artifact-registry", "artifact registry cleanup", "Build outputs publish to the internal registry. The artifact registry cleanup deletes untagged images weekly."},
		{"feature-flags", "feature flag rollout", "Features hide behind runtime flags. The feature flag rollout ramps from five percent to full traffic."},
		{"load-testing", "load test baseline", "Performance runs precede major launches. The load test baseline replays peak traffic in an isolated environment."},
		{"queue-backlog", "queue backlog draining", "Work items flow through the message broker. The queue backlog draining procedure pauses producers first."},
		{"cache-invalidation", "cache invalidation keys", "Hot lookups sit in the shared cache. The cache invalidation keys follow the entity and version naming pattern."},
		{"schema-migrations", "schema migration reversible", "Database changes ship as migrations. The schema migration reversible rule requires a tested down path."},
		{"service-catalog", "service catalog ownership", "Every service registers in the catalog. The service catalog ownership field names the accountable team."},
		{"dns-changes", "dns change propagation", "Records are managed in the zone repository. The dns change propagation window allows up to one hour."},
		{"tls-certificates", "tls certificate expiry", "Public endpoints terminate encryption at the edge. The tls certificate expiry monitor warns a month ahead."},
		{"sso-integration", "sso saml assertions", "Applications authenticate through single sign on. The sso saml assertions carry group claims for role mapping."},
		{"data-classification", "data classification restricted", "Information is labeled by sensitivity. The data classification restricted tier forbids export outside the region."},
		{"deletion-requests", "subject deletion request", "Privacy requests arrive through the portal. The subject deletion request completes within one month of receipt."},
		{"holiday-calendar", "holiday calendar regional", "Time off follows the published schedule. The holiday calendar regional variants cover every office location."},
		{"payroll-cycle", "payroll cutoff changes", "Salaries pay on the last business day. The payroll cutoff changes submitted after the fifteenth apply next month."},
		{"interview-loop", "interview loop debrief", "Candidates meet four interviewers in one day. The interview loop debrief closes with a written recommendation."},
		{"performance-reviews", "performance review calibration", "Reviews run twice a year. The performance review calibration aligns ratings across teams."},
		{"security-training", "phishing awareness training", "Annual courses are mandatory for all staff. The phishing awareness training assigns a refresher after each failed simulation."},
		{"accessibility-guidelines", "accessibility contrast keyboard", "Interfaces follow the internal accessibility standard. The accessibility contrast keyboard checks run in the component pipeline."},
	}

	out := make([]SeedDocument, 0, n)
	for i := 0; i < n && i < len(topics); i++ {
		t := topics[i]
		out = append(out, SeedDocument{
			Citation: t.citation,
			Body:     t.body,
		})
	}
	// If we need more than len(topics), duplicate with distinct citations
	for len(out) < n {
		i := len(out)
		t := topics[i%len(topics)]
		out = append(out, SeedDocument{
			Citation: fmt.Sprintf("%s-%d", t.citation, i+1),
			Body:     t.body,
		})
	}
	return out
}

func buildQueryCases(docs []SeedDocument) []QueryCase {
	if len(docs) == 0 {
		return nil
	}
	// Each query targets the signature phrase of exactly one document.
	phrases := []string{
		"rollback canary deployment", "vpn certificate renewal", "database failover replica",
		"incident severity matrix", "oncall handoff notes", "release train freeze",
		"expense reimbursement receipts", "travel booking approval", "gateway rate limits",
		"staging snapshot refresh", "backup restore drill", "secrets rotation vault",
		"log retention archive", "latency dashboard percentiles", "alert routing pager",
		"capacity forecast autoscaling", "postmortem timeline actions", "quarterly access review",
		"laptop disk encryption", "room booking calendar", "review approvals merge",
		"trunk branching model", "artifact registry cleanup", "feature flag rollout",
		"load test baseline", "queue backlog draining", "cache invalidation keys",
		"schema migration reversible", "service catalog ownership", "dns change propagation",
		"tls certificate expiry", "sso saml assertions", "data classification restricted",
		"subject deletion request", "holiday calendar regional", "payroll cutoff changes",
		"interview loop debrief", "performance review calibration", "phishing awareness training",
		"accessibility contrast keyboard",
	}
	var cases []QueryCase
	used := make(map[string]bool)
	for _, p := range phrases {
		// Find the first doc whose body carries this phrase
		for _, d := range docs {
			if containsPhrase(d, p) && !used[d.Citation] {
				cases = append(cases, QueryCase{
					Query:             p,
					ExpectedCitations: []string{d.Citation},
					Description:       fmt.Sprintf("query %q should surface %s", p, d.Citation),
				})
				used[d.Citation] = true
				break
			}
		}
	}
	return cases
}

func containsPhrase(d SeedDocument, phrase string) bool {
	return strings.Contains(d.Body, phrase)
}

// DocumentInputs converts the corpus documents to library inputs.
func (c *Corpus) DocumentInputs() []models.DocumentInput {
	out := make([]models.DocumentInput, len(c.Documents))
	for i, d := range c.Documents {
		out[i] = models.DocumentInput{
			Citation: d.Citation,
			Content:  d.Body,
		}
	}
	return out
}
