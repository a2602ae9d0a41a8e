package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/mkowalik/fridgekeep/internal/database"
)

func (h *Handler) ReportIssuePage(c *gin.Context) {
	h.render(c, "report_issue.html", gin.H{
		"IssueTypes": h.cfg.IssueTypes,
	})
}

// ReportIssue files an issue report for the default fridge on behalf of
// the session user.
func (h *Handler) ReportIssue(c *gin.Context) {
	user := currentUser(c)

	issueType := c.PostForm("type")
	description := c.PostForm("description")
	if issueType == "" || description == "" {
		flashAndRedirect(c, "Issue type and description are required", "/report_issue")
		return
	}
	if len(h.cfg.IssueTypes) > 0 && !lo.Contains(h.cfg.IssueTypes, issueType) {
		flashAndRedirect(c, fmt.Sprintf("Unknown issue type %q", issueType), "/report_issue")
		return
	}

	report := &database.IssueReport{
		IssueType:   issueType,
		Description: description,
		UserID:      user.ID,
		FridgeID:    h.fridge.ID,
	}
	if err := h.db.CreateIssueReport(c.Request.Context(), report); err != nil {
		flashAndRedirect(c, "Failed to report issue", "/report_issue")
		return
	}

	flashAndRedirect(c, "Issue reported", "/products")
}

// ListIssues shows all issue reports newest-first. Admin only, enforced by
// the route group.
func (h *Handler) ListIssues(c *gin.Context) {
	reports, err := h.db.ListIssueReports(c.Request.Context())
	if err != nil {
		flashAndRedirect(c, "Failed to load issue reports", "/products")
		return
	}

	h.render(c, "issues.html", gin.H{
		"Reports": reports,
	})
}
