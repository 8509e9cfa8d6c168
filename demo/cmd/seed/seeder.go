package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/features/command/addbook"
	"github.com/BhuvanMohan2005/library-management-go/features/command/checkoutbook"
	"github.com/BhuvanMohan2005/library-management-go/features/command/deactivatemember"
	"github.com/BhuvanMohan2005/library-management-go/features/command/registermember"
	"github.com/BhuvanMohan2005/library-management-go/features/command/returnbook"
	"github.com/BhuvanMohan2005/library-management-go/features/command/settlefine"
	"github.com/BhuvanMohan2005/library-management-go/features/query/librarystats"
	"github.com/BhuvanMohan2005/library-management-go/librarystore/postgresstore"
	"github.com/BhuvanMohan2005/library-management-go/shell/observable"
)

//go:embed catalog.json
var catalogJSON []byte

// catalogEntry mirrors one record of the embedded catalog file.
type catalogEntry struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	Genre       string `json:"genre"`
	Publisher   string `json:"publisher"`
	Published   string `json:"published"`
	Description string `json:"description"`
	Copies      int    `json:"copies"`
}

// memberSeeds are the borrowers the seeder registers before generating loans.
// Premium members get a raised borrowing limit, everyone else the policy default.
var memberSeeds = []struct {
	Name       string
	Email      string
	Phone      string
	Membership core.MembershipTypeString
}{
	{"Ada Lovelace", "ada.lovelace@example.org", "+1 555 0101", core.MembershipPremium},
	{"Grace Hopper", "grace.hopper@example.org", "+1 555 0102", core.MembershipRegular},
	{"Alan Turing", "alan.turing@example.org", "+1 555 0103", core.MembershipRegular},
	{"Barbara Liskov", "barbara.liskov@example.org", "+1 555 0104", core.MembershipPremium},
	{"Donald Knuth", "donald.knuth@example.org", "+1 555 0105", core.MembershipSenior},
	{"Edsger Dijkstra", "edsger.dijkstra@example.org", "+1 555 0106", core.MembershipSenior},
	{"Katherine Johnson", "katherine.johnson@example.org", "+1 555 0107", core.MembershipRegular},
	{"Dennis Ritchie", "dennis.ritchie@example.org", "+1 555 0108", core.MembershipRegular},
	{"Margaret Hamilton", "margaret.hamilton@example.org", "+1 555 0109", core.MembershipPremium},
	{"Ken Thompson", "ken.thompson@example.org", "+1 555 0110", core.MembershipRegular},
	{"Frances Allen", "frances.allen@example.org", "+1 555 0111", core.MembershipStudent},
	{"Niklaus Wirth", "niklaus.wirth@example.org", "+1 555 0112", core.MembershipStudent},
}

const premiumBorrowingLimit = 5

type seededBook struct {
	id    uuid.UUID
	title string
}

type seededMember struct {
	id   uuid.UUID
	name string
}

// Seeder drives the regular command handlers to fill the database with a
// plausible loan history: the embedded catalog, a handful of members, and
// loans spread over a configurable window ending now. Running it twice is
// safe, existing books and members are looked up and reused.
type Seeder struct {
	cfg    Config
	logger *slog.Logger
	store  postgresstore.LibraryStore
	policy core.LoanPolicy

	addBook          *observable.CommandWrapper[addbook.Command]
	registerMember   *observable.CommandWrapper[registermember.Command]
	checkOutBook     *observable.CommandWrapper[checkoutbook.Command]
	returnBook       *observable.CommandWrapper[returnbook.Command]
	settleFine       *observable.CommandWrapper[settlefine.Command]
	deactivateMember *observable.CommandWrapper[deactivatemember.Command]
	libraryStats     *observable.QueryWrapper[librarystats.Query, librarystats.LibraryStatistics]

	now   time.Time
	start time.Time

	books   []seededBook
	members []seededMember
}

// NewSeeder wires the command and query handlers, each wrapped for
// contextual logging, and validates the configuration.
func NewSeeder(
	store postgresstore.LibraryStore,
	policy core.LoanPolicy,
	cfg Config,
	logger *slog.Logger,
) (*Seeder, error) {

	if cfg.Members < 1 || cfg.Members > len(memberSeeds) {
		return nil, fmt.Errorf("members must be between 1 and %d", len(memberSeeds))
	}

	if cfg.LoanRounds < 1 {
		return nil, fmt.Errorf("loan rounds must be positive")
	}

	if cfg.WindowDays < policy.LoanPeriodDays {
		return nil, fmt.Errorf("window days must be at least the loan period of %d days", policy.LoanPeriodDays)
	}

	addBookWrapper, err := observable.NewCommandWrapper[addbook.Command](
		addbook.NewCommandHandler(store),
		observable.WithCommandContextualLogging[addbook.Command](logger),
	)
	if err != nil {
		return nil, fmt.Errorf("building the add book handler failed: %w", err)
	}

	registerMemberWrapper, err := observable.NewCommandWrapper[registermember.Command](
		registermember.NewCommandHandler(store, policy),
		observable.WithCommandContextualLogging[registermember.Command](logger),
	)
	if err != nil {
		return nil, fmt.Errorf("building the register member handler failed: %w", err)
	}

	checkOutBookWrapper, err := observable.NewCommandWrapper[checkoutbook.Command](
		checkoutbook.NewCommandHandler(store, policy),
		observable.WithCommandContextualLogging[checkoutbook.Command](logger),
	)
	if err != nil {
		return nil, fmt.Errorf("building the check out book handler failed: %w", err)
	}

	returnBookWrapper, err := observable.NewCommandWrapper[returnbook.Command](
		returnbook.NewCommandHandler(store, policy),
		observable.WithCommandContextualLogging[returnbook.Command](logger),
	)
	if err != nil {
		return nil, fmt.Errorf("building the return book handler failed: %w", err)
	}

	settleFineWrapper, err := observable.NewCommandWrapper[settlefine.Command](
		settlefine.NewCommandHandler(store, policy),
		observable.WithCommandContextualLogging[settlefine.Command](logger),
	)
	if err != nil {
		return nil, fmt.Errorf("building the settle fine handler failed: %w", err)
	}

	deactivateMemberWrapper, err := observable.NewCommandWrapper[deactivatemember.Command](
		deactivatemember.NewCommandHandler(store),
		observable.WithCommandContextualLogging[deactivatemember.Command](logger),
	)
	if err != nil {
		return nil, fmt.Errorf("building the deactivate member handler failed: %w", err)
	}

	libraryStatsWrapper, err := observable.NewQueryWrapper[librarystats.Query, librarystats.LibraryStatistics](
		librarystats.NewQueryHandler(store, policy),
		observable.WithQueryContextualLogging[librarystats.Query, librarystats.LibraryStatistics](logger),
	)
	if err != nil {
		return nil, fmt.Errorf("building the library stats handler failed: %w", err)
	}

	now := time.Now().UTC()

	return &Seeder{
		cfg:              cfg,
		logger:           logger,
		store:            store,
		policy:           policy,
		addBook:          addBookWrapper,
		registerMember:   registerMemberWrapper,
		checkOutBook:     checkOutBookWrapper,
		returnBook:       returnBookWrapper,
		settleFine:       settleFineWrapper,
		deactivateMember: deactivateMemberWrapper,
		libraryStats:     libraryStatsWrapper,
		now:              now,
		start:            now.AddDate(0, 0, -cfg.WindowDays),
	}, nil
}

// Run seeds the catalog, the members, and the loan history, in that order.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedCatalog(ctx); err != nil {
		return err
	}

	if err := s.seedMembers(ctx); err != nil {
		return err
	}

	if err := s.seedLoans(ctx); err != nil {
		return err
	}

	return s.retireOneMember(ctx)
}

// seedCatalog adds every book of the embedded catalog. A title whose ISBN is
// already in the catalog is looked up and reused under its existing id.
func (s *Seeder) seedCatalog(ctx context.Context) error {
	var entries []catalogEntry
	if err := jsoniter.ConfigFastest.Unmarshal(catalogJSON, &entries); err != nil {
		return fmt.Errorf("parsing the embedded catalog failed: %w", err)
	}

	for i, entry := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		publishedOn, err := time.Parse(time.DateOnly, entry.Published)
		if err != nil {
			return fmt.Errorf("catalog entry %q has an invalid published date: %w", entry.Title, err)
		}

		bookID, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generating a book id failed: %w", err)
		}

		occurredAt := s.start.Add(time.Duration(i) * time.Minute)

		command, buildErr := addbook.BuildCommand(
			bookID,
			entry.Title,
			entry.Author,
			entry.ISBN,
			entry.Genre,
			entry.Publisher,
			publishedOn,
			entry.Description,
			entry.Copies,
			occurredAt,
		)
		if buildErr != nil {
			return fmt.Errorf("catalog entry %q is invalid: %w", entry.Title, buildErr)
		}

		result, err := s.addBook.Handle(ctx, command)
		if err != nil {
			return fmt.Errorf("adding %q failed: %w", entry.Title, err)
		}

		if result.Rejected {
			s.logger.DebugContext(ctx, "catalog entry already present, reusing it",
				"title", entry.Title, "reason", result.RejectionReason)
		}

		isbn, err := core.NormalizeISBN(entry.ISBN)
		if err != nil {
			return err
		}

		book, err := s.store.GetBookByISBN(ctx, isbn)
		if err != nil {
			return fmt.Errorf("looking up %q after seeding failed: %w", entry.Title, err)
		}

		id, err := uuid.Parse(book.ID)
		if err != nil {
			return fmt.Errorf("book %q carries a malformed id: %w", entry.Title, err)
		}

		s.books = append(s.books, seededBook{id: id, title: book.Title})
	}

	s.logger.InfoContext(ctx, "catalog seeded", "books", len(s.books))

	return nil
}

// seedMembers registers the first cfg.Members entries of the seed list.
// An email that is already registered is looked up and reused.
func (s *Seeder) seedMembers(ctx context.Context) error {
	for i, seed := range memberSeeds[:s.cfg.Members] {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		memberID, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generating a member id failed: %w", err)
		}

		borrowingLimit := 0
		if seed.Membership == core.MembershipPremium {
			borrowingLimit = premiumBorrowingLimit
		}

		occurredAt := s.start.Add(time.Hour + time.Duration(i)*time.Minute)

		command := registermember.BuildCommand(
			memberID,
			seed.Name,
			seed.Email,
			seed.Phone,
			seed.Membership,
			occurredAt,
			borrowingLimit,
			occurredAt,
		)

		result, err := s.registerMember.Handle(ctx, command)
		if err != nil {
			return fmt.Errorf("registering %q failed: %w", seed.Name, err)
		}

		if result.Rejected {
			s.logger.DebugContext(ctx, "member already registered, reusing the account",
				"name", seed.Name, "reason", result.RejectionReason)
		}

		email, err := core.NormalizeEmail(seed.Email)
		if err != nil {
			return err
		}

		member, _, err := s.store.GetMemberByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("looking up %q after seeding failed: %w", seed.Name, err)
		}

		id, err := uuid.Parse(member.ID)
		if err != nil {
			return fmt.Errorf("member %q carries a malformed id: %w", seed.Name, err)
		}

		s.members = append(s.members, seededMember{id: id, name: member.Name})
	}

	s.logger.InfoContext(ctx, "members registered", "members", len(s.members))

	return nil
}

// seedLoans generates cfg.LoanRounds checkout scenarios spread over the
// window. The weights pick between a return within the loan period, a loan
// left open, and a late return whose fine is frozen and sometimes settled.
// Returns that would land in the future have not happened yet, those loans
// stay open. Rejected checkouts are counted and skipped, running into the
// borrowing limit or an empty shelf is part of a plausible history.
func (s *Seeder) seedLoans(ctx context.Context) error {
	var opened, returned, settled, rejected int

	stepHours := (s.cfg.WindowDays * 24) / s.cfg.LoanRounds

	for round := 0; round < s.cfg.LoanRounds; round++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		book := s.books[rand.IntN(len(s.books))]
		member := s.members[rand.IntN(len(s.members))]

		loanID, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generating a loan id failed: %w", err)
		}

		checkedOutOn := s.start.
			Add(time.Duration(round*stepHours) * time.Hour).
			Add(time.Duration(rand.IntN(12)) * time.Hour)

		result, err := s.checkOutBook.Handle(ctx, checkoutbook.BuildCommand(loanID, book.id, member.id, checkedOutOn))
		if err != nil {
			return fmt.Errorf("checking out %q for %q failed: %w", book.title, member.name, err)
		}

		if result.Rejected {
			rejected++
			s.logger.DebugContext(ctx, "checkout rejected",
				"book", book.title, "member", member.name, "reason", result.RejectionReason)

			continue
		}

		opened++

		action := rand.IntN(100)

		var returnedOn time.Time
		condition := core.ReturnConditionString("")

		switch {
		case action < s.cfg.ScenarioWeights[0]:
			returnedOn = checkedOutOn.AddDate(0, 0, 1+rand.IntN(max(1, s.policy.LoanPeriodDays-1)))
		case action < s.cfg.ScenarioWeights[0]+s.cfg.ScenarioWeights[1]:
			continue
		default:
			returnedOn = checkedOutOn.AddDate(0, 0, s.policy.LoanPeriodDays+1+rand.IntN(10))
			if rand.IntN(10) == 0 {
				condition = core.ConditionMinorDamage
			}
		}

		if returnedOn.After(s.now) {
			continue
		}

		returnResult, err := s.returnBook.Handle(ctx, returnbook.BuildCommand(loanID, condition, "", returnedOn))
		if err != nil {
			return fmt.Errorf("returning %q failed: %w", book.title, err)
		}

		if returnResult.Rejected {
			s.logger.DebugContext(ctx, "return rejected",
				"book", book.title, "reason", returnResult.RejectionReason)

			continue
		}

		returned++

		wasLate := action >= s.cfg.ScenarioWeights[0]+s.cfg.ScenarioWeights[1]
		if wasLate && rand.IntN(2) == 0 {
			settleResult, err := s.settleFine.Handle(ctx, settlefine.BuildCommand(loanID, returnedOn.Add(time.Hour)))
			if err != nil {
				return fmt.Errorf("settling the fine for %q failed: %w", book.title, err)
			}

			if !settleResult.Rejected {
				settled++
			}
		}
	}

	s.logger.InfoContext(ctx, "loan history generated",
		"opened", opened, "returned", returned, "fines_settled", settled, "checkouts_rejected", rejected)

	return nil
}

// retireOneMember deactivates the last seeded member so the statistics show
// the active count below the total. A member with open loans stays active.
func (s *Seeder) retireOneMember(ctx context.Context) error {
	member := s.members[len(s.members)-1]

	result, err := s.deactivateMember.Handle(ctx, deactivatemember.BuildCommand(member.id, s.now))
	if err != nil {
		return fmt.Errorf("deactivating %q failed: %w", member.name, err)
	}

	if result.Rejected {
		s.logger.DebugContext(ctx, "deactivation rejected, member keeps the account",
			"member", member.name, "reason", result.RejectionReason)
	}

	return nil
}

// Summarize queries the library statistics and logs them.
func (s *Seeder) Summarize(ctx context.Context) error {
	stats, err := s.libraryStats.Handle(ctx, librarystats.BuildQuery(s.now))
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "library state after seeding",
		"books", stats.TotalBooks,
		"copies", stats.TotalCopies,
		"available_copies", stats.AvailableCopies,
		"checked_out_copies", stats.CheckedOutCopies,
		"members", stats.TotalMembers,
		"active_members", stats.ActiveMembers,
		"open_loans", stats.OpenLoans,
		"overdue_loans", stats.OverdueLoans,
		"accruing_fines", stats.AccruingFines.String(),
	)

	return nil
}
