package main

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
)

func (cli *commandLine) radarDigest(cohortID, epicID string) error {
	radar, err := cli.svc.DropOutRadar(context.Background(), attendance.DropOutRadarRequest{
		CohortID: cohortID,
		EpicID:   epicID,
	})
	if err != nil {
		return err
	}

	if len(radar.Candidates) == 0 {
		fmt.Println("no drop-out candidates; nothing to send")
		return nil
	}
	if len(cli.conf.Mail.AlertRecipients) == 0 {
		return fmt.Errorf("%d candidate(s) flagged but no alert recipients configured", len(radar.Candidates))
	}

	recipients := make([]mail.Address, 0, len(cli.conf.Mail.AlertRecipients))
	for _, addr := range cli.conf.Mail.AlertRecipients {
		recipients = append(recipients, mail.Address{Address: addr})
	}

	cli.mailSvc.SendMessages(&core.EmailMessage{
		To:          recipients,
		Subject:     fmt.Sprintf("Drop-out radar: %d student(s) flagged in cohort %s", len(radar.Candidates), cohortID),
		TextContent: radarDigestBody(cohortID, epicID, radar),
	})

	fmt.Printf("digest sent to %d recipient(s)\n", len(recipients))
	return nil
}

func radarDigestBody(cohortID, epicID string, radar *attendance.DropOutRadar) string {
	bySeverity := make(map[string][]attendance.Candidate, 3)
	for _, c := range radar.Candidates {
		bySeverity[c.Severity] = append(bySeverity[c.Severity], c)
	}

	body := new(strings.Builder)
	_, _ = fmt.Fprintf(body, "Drop-out radar for cohort %s, epic %s (%d active students)\n", cohortID, epicID, radar.TotalStudents)

	for _, severity := range []string{attendance.SeverityCritical, attendance.SeverityHigh, attendance.SeverityMedium} {
		candidates := bySeverity[severity]
		if len(candidates) == 0 {
			continue
		}
		_, _ = fmt.Fprintf(body, "\n%s:\n", strings.ToUpper(severity))
		for _, c := range candidates {
			last := "never attended"
			if c.LastAttendanceDate.Valid {
				last = "last attended " + c.LastAttendanceDate.Time.Format("2006-01-02")
			}
			_, _ = fmt.Fprintf(body, "  - %s: %d consecutive unexplained absences, %s, %d absences over %d sessions\n",
				c.Name, c.ConsecutiveUninformed, last, c.TotalAbsences, c.TotalSessions)
		}
	}
	return body.String()
}
