package cli

import (
	"context"
	"fmt"
)

func (a *App) cmdInvites(ctx context.Context, pageNumber int) {
	if prob := a.invitations.Fetch(ctx, pageNumber); prob != nil {
		a.printProblem(prob)
		return
	}
	page := a.invitations.Current()
	if len(page.Items) == 0 {
		fmt.Fprintln(a.out, "No pending invitations.")
		return
	}
	for _, inv := range page.Items {
		fmt.Fprintf(a.out, "[%d] %s invited you to %q (%s)\n",
			inv.ID, inv.SenderName, inv.CookbookTitle, inv.SentAt.Format("2006-01-02"))
	}
	a.printPageInfo(page.PageNumber, page.TotalPages, page.TotalCount)
}

func (a *App) cmdInvite(ctx context.Context, cookbookID int64, email string) {
	if prob := a.invitations.Send(ctx, cookbookID, email); prob != nil {
		a.printProblem(prob)
		return
	}
	fmt.Fprintf(a.out, "Invitation sent to %s.\n", email)
}

func (a *App) cmdRespond(ctx context.Context, id int64, accept bool) {
	if prob := a.invitations.Respond(ctx, id, accept); prob != nil {
		a.printProblem(prob)
		return
	}
	if accept {
		fmt.Fprintf(a.out, "Invitation [%d] accepted.\n", id)
	} else {
		fmt.Fprintf(a.out, "Invitation [%d] declined.\n", id)
	}
}

func (a *App) cmdMembers(ctx context.Context, cookbookID int64, pageNumber int) {
	if prob := a.members.Fetch(ctx, cookbookID, pageNumber); prob != nil {
		a.printProblem(prob)
		return
	}
	page := a.members.Current()
	if len(page.Items) == 0 {
		fmt.Fprintln(a.out, "No members.")
		return
	}
	for _, m := range page.Items {
		name := m.DisplayName
		if name == "" {
			name = m.Email
		}
		fmt.Fprintf(a.out, "[%d] %s <%s> %s\n", m.ID, name, m.Email, permissionSummary(m))
	}
	a.printPageInfo(page.PageNumber, page.TotalPages, page.TotalCount)
}

func (a *App) cmdKick(ctx context.Context, membershipID int64) {
	if prob := a.members.Remove(ctx, membershipID); prob != nil {
		a.printProblem(prob)
		return
	}
	fmt.Fprintf(a.out, "Member [%d] removed.\n", membershipID)
}
