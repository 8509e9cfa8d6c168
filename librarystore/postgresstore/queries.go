package postgresstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

const (
	opGetBookByID              = "get_book_by_id"
	opGetBookByISBN            = "get_book_by_isbn"
	opGetMemberByID            = "get_member_by_id"
	opGetMemberByEmail         = "get_member_by_email"
	opGetLoanByID              = "get_loan_by_id"
	opLoanDetailsForMember     = "loan_details_for_member"
	opActiveLoanDetailsForBook = "active_loan_details_for_book"
	opActiveLoanDetails        = "active_loan_details"
	opSearchBooks              = "search_books"
	opCollectLibraryCounts     = "collect_library_counts"
	opCountLoansForBook        = "count_loans_for_book"

	aliasTotalBooks      = "total_books"
	aliasTotalCopies     = "total_copies_sum"
	aliasAvailableCopies = "available_copies_sum"
	aliasTotalMembers    = "total_members"
	aliasActiveMembers   = "active_members"
	aliasOpenLoans       = "open_loans"
	aliasTotalLoans      = "total_loans"

	exprCountOverAll  = "count(*) over ()"
	exprCountOpenOnly = "count(*) filter (where returned_on is null)"
)

type bookRow struct {
	id              string
	title           string
	author          string
	isbn            string
	genre           string
	publisher       string
	publishedOn     sql.NullTime
	description     string
	totalCopies     int64
	availableCopies int64
}

func (r bookRow) toBook() core.Book {
	book := core.Book{
		ID:              r.id,
		Title:           r.title,
		Author:          r.author,
		ISBN:            r.isbn,
		Genre:           r.genre,
		Publisher:       r.publisher,
		Description:     r.description,
		TotalCopies:     int(r.totalCopies),
		AvailableCopies: int(r.availableCopies),
	}

	if r.publishedOn.Valid {
		book.PublishedOn = core.ToDate(r.publishedOn.Time)
	}

	return book
}

type memberRow struct {
	id             string
	name           string
	email          string
	phone          string
	membershipType string
	joinedOn       time.Time
	borrowingLimit int64
	isActive       bool
	version        int64
	activeLoans    int64
}

func (r memberRow) toMember() (core.Member, librarystore.MemberVersionInt64) {
	return core.Member{
		ID:              r.id,
		Name:            r.name,
		Email:           r.email,
		Phone:           r.phone,
		MembershipType:  r.membershipType,
		JoinedOn:        core.ToDate(r.joinedOn),
		BorrowingLimit:  int(r.borrowingLimit),
		Active:          r.isActive,
		ActiveLoanCount: int(r.activeLoans),
	}, r.version
}

type loanRow struct {
	id              string
	bookID          string
	memberID        string
	checkedOutOn    time.Time
	dueOn           time.Time
	returnedOn      sql.NullTime
	returnCondition string
	notes           string
	finePaid        bool
}

func (r loanRow) toLoan() core.Loan {
	loan := core.Loan{
		ID:              r.id,
		BookID:          r.bookID,
		MemberID:        r.memberID,
		CheckedOutOn:    core.ToDate(r.checkedOutOn),
		DueOn:           core.ToDate(r.dueOn),
		ReturnCondition: r.returnCondition,
		Notes:           r.notes,
		FinePaid:        r.finePaid,
	}

	if r.returnedOn.Valid {
		loan.ReturnedOn = core.ToDate(r.returnedOn.Time)
	}

	return loan
}

type loanDetailRow struct {
	loanRow
	bookTitle  string
	memberName string
}

func (r loanDetailRow) toLoanDetail() librarystore.LoanDetail {
	return librarystore.LoanDetail{
		Loan:       r.toLoan(),
		BookTitle:  r.bookTitle,
		MemberName: r.memberName,
	}
}

// GetBookByID loads one catalog entry with its copy counts.
// It returns librarystore.ErrBookNotFound when no row exists for the id.
func (ls LibraryStore) GetBookByID(ctx context.Context, bookID core.BookIDString) (core.Book, error) {
	return ls.getBook(ctx, opGetBookByID, goqu.C(colID).Eq(bookID))
}

// GetBookByISBN loads one catalog entry by its normalized ISBN.
// It returns librarystore.ErrBookNotFound when no row exists for the ISBN.
func (ls LibraryStore) GetBookByISBN(ctx context.Context, isbn core.ISBNString) (core.Book, error) {
	return ls.getBook(ctx, opGetBookByISBN, goqu.C(colISBN).Eq(isbn))
}

func (ls LibraryStore) getBook(ctx context.Context, operation string, where goqu.Expression) (core.Book, error) {
	obs, obsCtx := ls.startReadObservation(ctx, operation)

	sqlQuery, buildErr := ls.buildBookQuery(where)
	if buildErr != nil {
		ls.logError(obsCtx, logMsgBuildStatementFailed, buildErr)
		obs.finishError(errorTypeBuildStatement)

		return core.Book{}, buildErr
	}

	rows, queryErr := ls.executeRead(obsCtx, sqlQuery)
	if queryErr != nil {
		obs.finishError(errorTypeQuery)

		return core.Book{}, queryErr
	}
	defer ls.closeRows(rows)

	if !rows.Next() {
		obs.finishSuccess(0)

		return core.Book{}, librarystore.ErrBookNotFound
	}

	var row bookRow
	scanErr := rows.Scan(
		&row.id, &row.title, &row.author, &row.isbn, &row.genre, &row.publisher,
		&row.publishedOn, &row.description, &row.totalCopies, &row.availableCopies)
	if scanErr != nil {
		ls.logError(obsCtx, logMsgScanRowFailed, scanErr)
		obs.finishError(errorTypeScan)

		return core.Book{}, errors.Join(librarystore.ErrScanningDBRowFailed, scanErr)
	}

	obs.finishSuccess(1)

	return row.toBook(), nil
}

func (ls LibraryStore) buildBookQuery(where goqu.Expression) (sqlStatementString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(ls.booksTable()).
		Select(
			colID, colTitle, colAuthor, colISBN, colGenre, colPublisher,
			colPublishedOn, colDescription, colTotalCopies, colAvailableCopies).
		Where(where)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(librarystore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// GetMemberByID loads one member together with their current row version and
// the derived count of open loans.
// It returns librarystore.ErrMemberNotFound when no row exists for the id.
func (ls LibraryStore) GetMemberByID(ctx context.Context, memberID core.MemberIDString) (
	core.Member,
	librarystore.MemberVersionInt64,
	error,
) {
	return ls.getMember(ctx, opGetMemberByID, goqu.C(colID).Eq(memberID))
}

// GetMemberByEmail loads one member by their normalized email address.
// It returns librarystore.ErrMemberNotFound when no row exists for the email.
func (ls LibraryStore) GetMemberByEmail(ctx context.Context, email string) (
	core.Member,
	librarystore.MemberVersionInt64,
	error,
) {
	return ls.getMember(ctx, opGetMemberByEmail, goqu.C(colEmail).Eq(email))
}

func (ls LibraryStore) getMember(ctx context.Context, operation string, where goqu.Expression) (
	core.Member,
	librarystore.MemberVersionInt64,
	error,
) {
	obs, obsCtx := ls.startReadObservation(ctx, operation)

	sqlQuery, buildErr := ls.buildMemberQuery(where)
	if buildErr != nil {
		ls.logError(obsCtx, logMsgBuildStatementFailed, buildErr)
		obs.finishError(errorTypeBuildStatement)

		return core.Member{}, 0, buildErr
	}

	rows, queryErr := ls.executeRead(obsCtx, sqlQuery)
	if queryErr != nil {
		obs.finishError(errorTypeQuery)

		return core.Member{}, 0, queryErr
	}
	defer ls.closeRows(rows)

	if !rows.Next() {
		obs.finishSuccess(0)

		return core.Member{}, 0, librarystore.ErrMemberNotFound
	}

	var row memberRow
	scanErr := rows.Scan(
		&row.id, &row.name, &row.email, &row.phone, &row.membershipType,
		&row.joinedOn, &row.borrowingLimit, &row.isActive, &row.version, &row.activeLoans)
	if scanErr != nil {
		ls.logError(obsCtx, logMsgScanRowFailed, scanErr)
		obs.finishError(errorTypeScan)

		return core.Member{}, 0, errors.Join(librarystore.ErrScanningDBRowFailed, scanErr)
	}

	obs.finishSuccess(1)

	member, version := row.toMember()

	return member, version, nil
}

func (ls LibraryStore) buildMemberQuery(where goqu.Expression) (sqlStatementString, error) {
	members := ls.membersTable()
	loans := ls.loansTable()

	// The open loan count is derived on load, never stored on the member row.
	activeLoansStmt := goqu.Dialect(dialectPostgres).
		From(loans).
		Select(goqu.L(exprCountAll)).
		Where(
			goqu.I(loans+"."+colMemberID).Eq(goqu.I(members+"."+colID)),
			goqu.I(loans+"."+colReturnedOn).IsNull(),
		)

	selectStmt := goqu.Dialect(dialectPostgres).
		From(members).
		Select(
			colID, colName, colEmail, colPhone, colMembershipType,
			colJoinedOn, colBorrowingLimit, colIsActive, colVersion,
			activeLoansStmt.As(aliasActiveLoans)).
		Where(where)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(librarystore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// GetLoanByID loads one loan by its id.
// It returns librarystore.ErrLoanNotFound when no row exists for the id.
func (ls LibraryStore) GetLoanByID(ctx context.Context, loanID core.LoanIDString) (core.Loan, error) {
	obs, obsCtx := ls.startReadObservation(ctx, opGetLoanByID)

	sqlQuery, buildErr := ls.buildLoanQuery(goqu.C(colID).Eq(loanID))
	if buildErr != nil {
		ls.logError(obsCtx, logMsgBuildStatementFailed, buildErr)
		obs.finishError(errorTypeBuildStatement)

		return core.Loan{}, buildErr
	}

	rows, queryErr := ls.executeRead(obsCtx, sqlQuery)
	if queryErr != nil {
		obs.finishError(errorTypeQuery)

		return core.Loan{}, queryErr
	}
	defer ls.closeRows(rows)

	if !rows.Next() {
		obs.finishSuccess(0)

		return core.Loan{}, librarystore.ErrLoanNotFound
	}

	var row loanRow
	scanErr := rows.Scan(
		&row.id, &row.bookID, &row.memberID, &row.checkedOutOn, &row.dueOn,
		&row.returnedOn, &row.returnCondition, &row.notes, &row.finePaid)
	if scanErr != nil {
		ls.logError(obsCtx, logMsgScanRowFailed, scanErr)
		obs.finishError(errorTypeScan)

		return core.Loan{}, errors.Join(librarystore.ErrScanningDBRowFailed, scanErr)
	}

	obs.finishSuccess(1)

	return row.toLoan(), nil
}

func (ls LibraryStore) buildLoanQuery(where goqu.Expression) (sqlStatementString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(ls.loansTable()).
		Select(
			colID, colBookID, colMemberID, colCheckedOutOn, colDueOn,
			colReturnedOn, colReturnCondition, colNotes, colFinePaid).
		Where(where)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(librarystore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// LoanDetailsForMember loads the full loan history of one member, newest
// checkout first, with book titles and the member name joined in.
func (ls LibraryStore) LoanDetailsForMember(ctx context.Context, memberID core.MemberIDString) (
	[]librarystore.LoanDetail,
	error,
) {
	loans := ls.loansTable()

	return ls.queryLoanDetails(
		ctx,
		opLoanDetailsForMember,
		[]goqu.Expression{goqu.I(loans + "." + colMemberID).Eq(memberID)},
		goqu.I(loans+"."+colCheckedOutOn).Desc(),
		goqu.I(loans+"."+colID).Asc(),
	)
}

// ActiveLoanDetailsForBook loads the open loans of one book, earliest due
// date first, with book titles and member names joined in.
func (ls LibraryStore) ActiveLoanDetailsForBook(ctx context.Context, bookID core.BookIDString) (
	[]librarystore.LoanDetail,
	error,
) {
	loans := ls.loansTable()

	return ls.queryLoanDetails(
		ctx,
		opActiveLoanDetailsForBook,
		[]goqu.Expression{
			goqu.I(loans + "." + colBookID).Eq(bookID),
			goqu.I(loans + "." + colReturnedOn).IsNull(),
		},
		goqu.I(loans+"."+colDueOn).Asc(),
		goqu.I(loans+"."+colID).Asc(),
	)
}

// ActiveLoanDetails loads every open loan in the library, earliest due date
// first, with book titles and member names joined in. Overdue filtering and
// fine amounts are derived by the caller from the loan dates and the policy.
func (ls LibraryStore) ActiveLoanDetails(ctx context.Context) ([]librarystore.LoanDetail, error) {
	loans := ls.loansTable()

	return ls.queryLoanDetails(
		ctx,
		opActiveLoanDetails,
		[]goqu.Expression{goqu.I(loans + "." + colReturnedOn).IsNull()},
		goqu.I(loans+"."+colDueOn).Asc(),
		goqu.I(loans+"."+colID).Asc(),
	)
}

func (ls LibraryStore) queryLoanDetails(
	ctx context.Context,
	operation string,
	where []goqu.Expression,
	order ...exp.OrderedExpression,
) ([]librarystore.LoanDetail, error) {
	obs, obsCtx := ls.startReadObservation(ctx, operation)

	sqlQuery, buildErr := ls.buildLoanDetailQuery(where, order...)
	if buildErr != nil {
		ls.logError(obsCtx, logMsgBuildStatementFailed, buildErr)
		obs.finishError(errorTypeBuildStatement)

		return nil, buildErr
	}

	rows, queryErr := ls.executeRead(obsCtx, sqlQuery)
	if queryErr != nil {
		obs.finishError(errorTypeQuery)

		return nil, queryErr
	}
	defer ls.closeRows(rows)

	details := make([]librarystore.LoanDetail, 0)

	for rows.Next() {
		var row loanDetailRow
		scanErr := rows.Scan(
			&row.id, &row.bookID, &row.memberID, &row.checkedOutOn, &row.dueOn,
			&row.returnedOn, &row.returnCondition, &row.notes, &row.finePaid,
			&row.bookTitle, &row.memberName)
		if scanErr != nil {
			ls.logError(obsCtx, logMsgScanRowFailed, scanErr)
			obs.finishError(errorTypeScan)

			return nil, errors.Join(librarystore.ErrScanningDBRowFailed, scanErr)
		}

		details = append(details, row.toLoanDetail())
	}

	obs.finishSuccess(len(details))

	return details, nil
}

func (ls LibraryStore) buildLoanDetailQuery(
	where []goqu.Expression,
	order ...exp.OrderedExpression,
) (sqlStatementString, error) {
	loans := ls.loansTable()
	books := ls.booksTable()
	members := ls.membersTable()

	selectStmt := goqu.Dialect(dialectPostgres).
		From(loans).
		Join(goqu.T(books), goqu.On(goqu.I(loans+"."+colBookID).Eq(goqu.I(books+"."+colID)))).
		Join(goqu.T(members), goqu.On(goqu.I(loans+"."+colMemberID).Eq(goqu.I(members+"."+colID)))).
		Select(
			goqu.I(loans+"."+colID), goqu.I(loans+"."+colBookID), goqu.I(loans+"."+colMemberID),
			goqu.I(loans+"."+colCheckedOutOn), goqu.I(loans+"."+colDueOn), goqu.I(loans+"."+colReturnedOn),
			goqu.I(loans+"."+colReturnCondition), goqu.I(loans+"."+colNotes), goqu.I(loans+"."+colFinePaid),
			goqu.I(books+"."+colTitle), goqu.I(members+"."+colName)).
		Where(where...).
		Order(order...)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(librarystore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// SearchBooks runs a paged catalog search and returns the matching page
// together with the total match count across all pages.
func (ls LibraryStore) SearchBooks(ctx context.Context, criteria librarystore.BookSearchCriteria) (
	[]core.Book,
	int,
	error,
) {
	obs, obsCtx := ls.startReadObservation(ctx, opSearchBooks)

	sqlQuery, buildErr := ls.buildSearchBooksQuery(criteria)
	if buildErr != nil {
		ls.logError(obsCtx, logMsgBuildStatementFailed, buildErr)
		obs.finishError(errorTypeBuildStatement)

		return nil, 0, buildErr
	}

	rows, queryErr := ls.executeRead(obsCtx, sqlQuery)
	if queryErr != nil {
		obs.finishError(errorTypeQuery)

		return nil, 0, queryErr
	}
	defer ls.closeRows(rows)

	books := make([]core.Book, 0)
	totalCount := 0

	for rows.Next() {
		var row bookRow
		var total int64
		scanErr := rows.Scan(
			&row.id, &row.title, &row.author, &row.isbn, &row.genre, &row.publisher,
			&row.publishedOn, &row.description, &row.totalCopies, &row.availableCopies,
			&total)
		if scanErr != nil {
			ls.logError(obsCtx, logMsgScanRowFailed, scanErr)
			obs.finishError(errorTypeScan)

			return nil, 0, errors.Join(librarystore.ErrScanningDBRowFailed, scanErr)
		}

		books = append(books, row.toBook())
		totalCount = int(total)
	}

	obs.finishSuccess(len(books))

	return books, totalCount, nil
}

func (ls LibraryStore) buildSearchBooksQuery(criteria librarystore.BookSearchCriteria) (sqlStatementString, error) {
	criteria = criteria.Normalized()
	pageSize := criteria.PageSize
	page := criteria.Page

	selectStmt := goqu.Dialect(dialectPostgres).
		From(ls.booksTable()).
		Select(
			colID, colTitle, colAuthor, colISBN, colGenre, colPublisher,
			colPublishedOn, colDescription, colTotalCopies, colAvailableCopies,
			goqu.L(exprCountOverAll).As(aliasTotalCount)).
		Order(goqu.I(colTitle).Asc(), goqu.I(colID).Asc()).
		Limit(uint(pageSize)).
		Offset(uint((page - 1) * pageSize))

	if criteria.Text != "" {
		pattern := "%" + criteria.Text + "%"
		selectStmt = selectStmt.Where(goqu.Or(
			goqu.C(colTitle).ILike(pattern),
			goqu.C(colDescription).ILike(pattern),
			goqu.C(colISBN).ILike(pattern),
		))
	}

	if criteria.Genre != "" {
		selectStmt = selectStmt.Where(goqu.C(colGenre).Eq(criteria.Genre))
	}

	if criteria.Author != "" {
		selectStmt = selectStmt.Where(goqu.C(colAuthor).ILike("%" + criteria.Author + "%"))
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(librarystore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// CollectLibraryCounts gathers the dashboard counts in a single statement.
func (ls LibraryStore) CollectLibraryCounts(ctx context.Context) (librarystore.LibraryCounts, error) {
	obs, obsCtx := ls.startReadObservation(ctx, opCollectLibraryCounts)

	sqlQuery, buildErr := ls.buildLibraryCountsQuery()
	if buildErr != nil {
		ls.logError(obsCtx, logMsgBuildStatementFailed, buildErr)
		obs.finishError(errorTypeBuildStatement)

		return librarystore.LibraryCounts{}, buildErr
	}

	rows, queryErr := ls.executeRead(obsCtx, sqlQuery)
	if queryErr != nil {
		obs.finishError(errorTypeQuery)

		return librarystore.LibraryCounts{}, queryErr
	}
	defer ls.closeRows(rows)

	if !rows.Next() {
		obs.finishSuccess(0)

		return librarystore.LibraryCounts{}, nil
	}

	var totalBooks, totalCopies, availableCopies, totalMembers, activeMembers, openLoans int64
	scanErr := rows.Scan(&totalBooks, &totalCopies, &availableCopies, &totalMembers, &activeMembers, &openLoans)
	if scanErr != nil {
		ls.logError(obsCtx, logMsgScanRowFailed, scanErr)
		obs.finishError(errorTypeScan)

		return librarystore.LibraryCounts{}, errors.Join(librarystore.ErrScanningDBRowFailed, scanErr)
	}

	obs.finishSuccess(1)

	return librarystore.LibraryCounts{
		TotalBooks:      int(totalBooks),
		TotalCopies:     int(totalCopies),
		AvailableCopies: int(availableCopies),
		TotalMembers:    int(totalMembers),
		ActiveMembers:   int(activeMembers),
		OpenLoans:       int(openLoans),
	}, nil
}

func (ls LibraryStore) buildLibraryCountsQuery() (sqlStatementString, error) {
	builder := goqu.Dialect(dialectPostgres)
	books := ls.booksTable()
	members := ls.membersTable()
	loans := ls.loansTable()

	selectStmt := builder.Select(
		builder.From(books).Select(goqu.L(exprCountAll)).As(aliasTotalBooks),
		builder.From(books).Select(goqu.COALESCE(goqu.SUM(colTotalCopies), 0)).As(aliasTotalCopies),
		builder.From(books).Select(goqu.COALESCE(goqu.SUM(colAvailableCopies), 0)).As(aliasAvailableCopies),
		builder.From(members).Select(goqu.L(exprCountAll)).As(aliasTotalMembers),
		builder.From(members).Select(goqu.L(exprCountAll)).Where(goqu.C(colIsActive).IsTrue()).As(aliasActiveMembers),
		builder.From(loans).Select(goqu.L(exprCountAll)).Where(goqu.C(colReturnedOn).IsNull()).As(aliasOpenLoans),
	)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(librarystore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// CountLoansForBook counts the open loans and the total loans ever recorded
// for one book. Removal decisions need both counts.
func (ls LibraryStore) CountLoansForBook(ctx context.Context, bookID core.BookIDString) (
	openLoans int,
	totalLoans int,
	err error,
) {
	obs, obsCtx := ls.startReadObservation(ctx, opCountLoansForBook)

	sqlQuery, buildErr := ls.buildLoanCountsQuery(bookID)
	if buildErr != nil {
		ls.logError(obsCtx, logMsgBuildStatementFailed, buildErr)
		obs.finishError(errorTypeBuildStatement)

		return 0, 0, buildErr
	}

	rows, queryErr := ls.executeRead(obsCtx, sqlQuery)
	if queryErr != nil {
		obs.finishError(errorTypeQuery)

		return 0, 0, queryErr
	}
	defer ls.closeRows(rows)

	if !rows.Next() {
		obs.finishSuccess(0)

		return 0, 0, nil
	}

	var open, total int64
	scanErr := rows.Scan(&open, &total)
	if scanErr != nil {
		ls.logError(obsCtx, logMsgScanRowFailed, scanErr)
		obs.finishError(errorTypeScan)

		return 0, 0, errors.Join(librarystore.ErrScanningDBRowFailed, scanErr)
	}

	obs.finishSuccess(1)

	return int(open), int(total), nil
}

func (ls LibraryStore) buildLoanCountsQuery(bookID core.BookIDString) (sqlStatementString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(ls.loansTable()).
		Select(
			goqu.L(exprCountOpenOnly).As(aliasOpenLoans),
			goqu.L(exprCountAll).As(aliasTotalLoans)).
		Where(goqu.C(colBookID).Eq(bookID))

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(librarystore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}
