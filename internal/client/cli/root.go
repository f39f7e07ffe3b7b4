package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mvolkov/tastebook/internal/client/api"
	"github.com/mvolkov/tastebook/internal/client/models"
)

const helpText = `Commands:
  login                       sign in
  register                    create an account
  logout                      sign out and wipe the local session
  whoami                      show the current account
  rename <display name>       change the display name

  books [page]                list cookbooks
  next | prev                 page through cookbooks
  add-book                    create a cookbook
  edit-book <id>              edit a cookbook
  del-book <id>               delete a cookbook
  fav <id>                    toggle a local favorite mark

  recipes <bookID> [page]     list recipes of a cookbook
  find <bookID> <name>        search recipes by name
  show <recipeID>             show full recipe details
  add-recipe <bookID>         create a recipe
  del-recipe <id>             delete a recipe
  upload <file> [file...]     upload recipe images

  members <bookID> [page]     list cookbook members
  kick <membershipID>         remove a member

  invites [page]              list pending invitations
  invite <bookID> <email>     invite a user to a cookbook
  accept <id> | decline <id>  respond to an invitation

  help                        this text
  exit                        quit`

// Root runs the command loop until exit or EOF.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Tastebook. Type 'help' for commands.")
	for {
		fmt.Fprintf(a.out, "%s> ", a.promptName())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				a.log.Error(ctx, "failed to read command", "error", err)
			}
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if !a.dispatch(ctx, fields[0], fields[1:]) {
			return
		}
	}
}

func (a *App) promptName() string {
	if a.email != "" {
		return a.email
	}
	return "tastebook"
}

// dispatch runs one command; returns false when the loop should stop.
func (a *App) dispatch(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "help":
		fmt.Fprintln(a.out, helpText)
	case "exit", "quit":
		return false

	case "login":
		a.cmdLogin(ctx)
	case "register":
		a.cmdRegister(ctx)
	case "logout":
		a.cmdLogout(ctx)
	case "whoami":
		a.cmdWhoAmI(ctx)
	case "rename":
		a.cmdRename(ctx, strings.Join(args, " "))

	case "books":
		a.cmdBooks(ctx, optionalPage(args))
	case "next":
		a.cmdBooks(ctx, a.cookbookPage+1)
	case "prev":
		a.cmdBooks(ctx, a.cookbookPage-1)
	case "add-book":
		a.cmdAddBook(ctx)
	case "edit-book":
		a.withID(args, func(id int64) { a.cmdEditBook(ctx, id) })
	case "del-book":
		a.withID(args, func(id int64) { a.cmdDelBook(ctx, id) })
	case "fav":
		a.withID(args, func(id int64) { a.cmdFav(ctx, id) })

	case "recipes":
		a.withID(args, func(id int64) { a.cmdRecipes(ctx, id, "", optionalPage(args[1:])) })
	case "find":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "usage: find <bookID> <name>")
			return true
		}
		a.withID(args, func(id int64) { a.cmdRecipes(ctx, id, strings.Join(args[1:], " "), 1) })
	case "show":
		a.withID(args, func(id int64) { a.cmdShowRecipe(ctx, id) })
	case "add-recipe":
		a.withID(args, func(id int64) { a.cmdAddRecipe(ctx, id) })
	case "del-recipe":
		a.withID(args, func(id int64) { a.cmdDelRecipe(ctx, id) })
	case "upload":
		a.cmdUpload(ctx, args)

	case "members":
		a.withID(args, func(id int64) { a.cmdMembers(ctx, id, optionalPage(args[1:])) })
	case "kick":
		a.withID(args, func(id int64) { a.cmdKick(ctx, id) })

	case "invites":
		a.cmdInvites(ctx, optionalPage(args))
	case "invite":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "usage: invite <bookID> <email>")
			return true
		}
		a.withID(args, func(id int64) { a.cmdInvite(ctx, id, args[1]) })
	case "accept":
		a.withID(args, func(id int64) { a.cmdRespond(ctx, id, true) })
	case "decline":
		a.withID(args, func(id int64) { a.cmdRespond(ctx, id, false) })

	default:
		fmt.Fprintf(a.out, "unknown command %q, type 'help'\n", cmd)
	}
	return true
}

// withID parses args[0] as a numeric id and runs fn, printing usage on
// malformed input.
func (a *App) withID(args []string, fn func(id int64)) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "an id argument is required")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(a.out, "invalid id %q\n", args[0])
		return
	}
	fn(id)
}

func optionalPage(args []string) int {
	if len(args) == 0 {
		return 1
	}
	page, err := strconv.Atoi(args[0])
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// printProblem renders an API problem for the terminal.
func (a *App) printProblem(prob *api.Problem) {
	switch prob.Kind {
	case api.KindUnauthorized:
		fmt.Fprintln(a.out, "Not signed in (or the session expired). Use 'login'.")
	case api.KindForbidden:
		fmt.Fprintln(a.out, "You do not have permission for that.")
	case api.KindNotFound:
		fmt.Fprintln(a.out, "Not found.")
	case api.KindTimeout:
		fmt.Fprintln(a.out, "The request timed out, try again.")
	case api.KindCannotConnect:
		fmt.Fprintln(a.out, "Cannot reach the server.")
	default:
		if prob.Detail != "" {
			fmt.Fprintf(a.out, "Request failed: %s\n", prob.Detail)
		} else {
			fmt.Fprintf(a.out, "Request failed (%s).\n", prob.Kind)
		}
	}
}

func (a *App) printPageInfo(pageNumber, totalPages, totalCount int) {
	if totalPages > 1 {
		fmt.Fprintf(a.out, "page %d of %d (%d total)\n", pageNumber, totalPages, totalCount)
	}
}

func joinNonEmpty(parts []string, sep string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func formatMinutes(prep, cook int) string {
	var parts []string
	if prep > 0 {
		parts = append(parts, fmt.Sprintf("prep %dm", prep))
	}
	if cook > 0 {
		parts = append(parts, fmt.Sprintf("cook %dm", cook))
	}
	return joinNonEmpty(parts, ", ")
}

func permissionSummary(m models.Membership) string {
	if m.IsOwner {
		return "owner"
	}
	var flags []string
	if m.CanAddRecipe {
		flags = append(flags, "add")
	}
	if m.CanUpdateRecipe {
		flags = append(flags, "edit")
	}
	if m.CanDeleteRecipe {
		flags = append(flags, "delete")
	}
	if m.CanSendInvite {
		flags = append(flags, "invite")
	}
	if m.CanRemoveMember {
		flags = append(flags, "kick")
	}
	if m.CanEditCookbook {
		flags = append(flags, "manage")
	}
	if len(flags) == 0 {
		return "read-only"
	}
	return strings.Join(flags, "+")
}
