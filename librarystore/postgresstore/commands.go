package postgresstore

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/BhuvanMohan2005/library-management-go/core"
	"github.com/BhuvanMohan2005/library-management-go/librarystore"
)

const (
	opAddBook          = "add_book"
	opRemoveBook       = "remove_book"
	opRegisterMember   = "register_member"
	opDeactivateMember = "deactivate_member"
	opCheckOutBook     = "check_out_book"
	opReturnBook       = "return_book"
	opSettleFine       = "settle_fine"

	exprExists    = "exists ?"
	exprNotExists = "not exists ?"
)

// AddBook inserts a new catalog entry with all copies available.
// A clash on the id or the ISBN affects no rows and surfaces as
// librarystore.ErrConcurrencyConflict, so the caller re-loads and re-decides.
func (ls LibraryStore) AddBook(ctx context.Context, book core.Book) error {
	obs, obsCtx := ls.startWriteObservation(ctx, opAddBook)

	sqlStatement, buildErr := ls.buildAddBookStatement(book)
	if buildErr != nil {
		ls.logError(obsCtx, logMsgBuildStatementFailed, buildErr)
		obs.finishError(errorTypeBuildStatement)

		return buildErr
	}

	rowsAffected, execErr := ls.executeWrite(obsCtx, sqlStatement)
	if execErr != nil {
		obs.finishError(errorTypeExec)

		return execErr
	}

	return ls.validateWriteResult(obs, rowsAffected)
}

func (ls LibraryStore) buildAddBookStatement(book core.Book) (sqlStatementString, error) {
	var publishedOn any
	if !book.PublishedOn.IsZero() {
		publishedOn = book.PublishedOn
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(ls.booksTable()).
		Cols(
			colID, colTitle, colAuthor, colISBN, colGenre, colPublisher,
			colPublishedOn, colDescription, colTotalCopies, colAvailableCopies).
		Vals(goqu.Vals{
			book.ID, book.Title, book.Author, book.ISBN, book.Genre, book.Publisher,
			publishedOn, book.Description, book.TotalCopies, book.AvailableCopies,
		}).
		OnConflict(goqu.DoNothing())

	sqlStatement, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(librarystore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlStatement, nil
}

// RemoveBook deletes a catalog entry, guarded against any loan ever having
// referenced it. Loan rows are the library's lending record and removing a
// book must not orphan them.
func (ls LibraryStore) RemoveBook(ctx context.Context, bookID core.BookIDString) error {
	obs, obsCtx := ls.startWriteObservation(ctx, opRemoveBook)

	sqlStatement, buildErr := ls.buildRemoveBookStatement(bookID)
	if buildErr != nil {
		ls.logError(obsCtx, logMsgBuildStatementFailed, buildErr)
		obs.finishError(errorTypeBuildStatement)

		return buildErr
	}

	rowsAffected, execErr := ls.executeWrite(obsCtx, sqlStatement)
	if execErr != nil {
		obs.finishError(errorTypeExec)

		return execErr
	}

	return ls.validateWriteResult(obs, rowsAffected)
}

func (ls LibraryStore) buildRemoveBookStatement(bookID core.BookIDString) (sqlStatementString, error) {
	loanReferenceStmt := goqu.Dialect(dialectPostgres).
		From(ls.loansTable()).
		Select(goqu.L("1")).
		Where(goqu.C(colBookID).Eq(bookID))

	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(ls.booksTable()).
		Where(
			goqu.C(colID).Eq(bookID),
			goqu.L(exprNotExists, loanReferenceStmt),
		)

	sqlStatement, _, toSQLErr := deleteStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(librarystore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlStatement, nil
}

// RegisterMember inserts a new member row with version 0.
// A clash on the id or the email affects no rows and surfaces as
// librarystore.ErrConcurrencyConflict, so the caller re-loads and re-decides.
func (ls LibraryStore) RegisterMember(ctx context.Context, member core.Member) error {
	obs, obsCtx := ls.startWriteObservation(ctx, opRegisterMember)

	sqlStatement, buildErr := ls.buildRegisterMemberStatement(member)
	if buildErr != nil {
		ls.logError(obsCtx, logMsgBuildStatementFailed, buildErr)
		obs.finishError(errorTypeBuildStatement)

		return buildErr
	}

	rowsAffected, execErr := ls.executeWrite(obsCtx, sqlStatement)
	if execErr != nil {
		obs.finishError(errorTypeExec)

		return execErr
	}

	return ls.validateWriteResult(obs, rowsAffected)
}

func (ls LibraryStore) buildRegisterMemberStatement(member core.Member) (sqlStatementString, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(ls.membersTable()).
		Cols(
			colID, colName, colEmail, colPhone, colMembershipType,
			colJoinedOn, colBorrowingLimit, colIsActive, colVersion).
		Vals(goqu.Vals{
			member.ID, member.Name, member.Email, member.Phone, member.MembershipType,
			member.JoinedOn, member.BorrowingLimit, member.Active, 0,
		}).
		OnConflict(goqu.DoNothing())

	sqlStatement, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(librarystore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlStatement, nil
}

// DeactivateMember closes a member account, guarded by the member's version
// so the decision that no open loans remain cannot race a checkout.
func (ls LibraryStore) DeactivateMember(
	ctx context.Context,
	memberID core.MemberIDString,
	expectedVersion librarystore.MemberVersionInt64,
) error {
	obs, obsCtx := ls.startWriteObservation(ctx, opDeactivateMember)

	sqlStatement, buildErr := ls.buildDeactivateMemberStatement(memberID, expectedVersion)
	if buildErr != nil {
		ls.logError(obsCtx, logMsgBuildStatementFailed, buildErr)
		obs.finishError(errorTypeBuildStatement)

		return buildErr
	}

	rowsAffected, execErr := ls.executeWrite(obsCtx, sqlStatement)
	if execErr != nil {
		obs.finishError(errorTypeExec)

		return execErr
	}

	return ls.validateWriteResult(obs, rowsAffected)
}

func (ls LibraryStore) buildDeactivateMemberStatement(
	memberID core.MemberIDString,
	expectedVersion librarystore.MemberVersionInt64,
) (sqlStatementString, error) {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(ls.membersTable()).
		Set(goqu.Record{
			colIsActive:  false,
			colVersion:   goqu.L(colVersion + " + 1"),
			colUpdatedAt: goqu.L(exprNow),
		}).
		Where(
			goqu.C(colID).Eq(memberID),
			goqu.C(colVersion).Eq(expectedVersion),
			goqu.C(colIsActive).IsTrue(),
		)

	sqlStatement, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(librarystore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlStatement, nil
}

// CheckOutBook records a new loan in one guarded statement: it bumps the
// member's version, claims one available copy and inserts the loan row, and
// affects no rows unless all three steps hold.
//
// The member guard checks the loan id does not exist yet, because the chained
// CTEs run even when the final insert inserts nothing; without that check a
// replayed command would bump versions and claim copies as a side effect.
func (ls LibraryStore) CheckOutBook(
	ctx context.Context,
	loan core.Loan,
	expectedMemberVersion librarystore.MemberVersionInt64,
) error {
	obs, obsCtx := ls.startWriteObservation(ctx, opCheckOutBook)

	sqlStatement, buildErr := ls.buildCheckOutBookStatement(loan, expectedMemberVersion)
	if buildErr != nil {
		ls.logError(obsCtx, logMsgBuildStatementFailed, buildErr)
		obs.finishError(errorTypeBuildStatement)

		return buildErr
	}

	rowsAffected, execErr := ls.executeWrite(obsCtx, sqlStatement)
	if execErr != nil {
		obs.finishError(errorTypeExec)

		return execErr
	}

	return ls.validateWriteResult(obs, rowsAffected)
}

func (ls LibraryStore) buildCheckOutBookStatement(
	loan core.Loan,
	expectedMemberVersion librarystore.MemberVersionInt64,
) (sqlStatementString, error) {
	builder := goqu.Dialect(dialectPostgres)

	loanProbeStmt := builder.
		From(ls.loansTable()).
		Select(goqu.L("1")).
		Where(goqu.C(colID).Eq(loan.ID))

	memberGuardStmt := builder.
		Update(ls.membersTable()).
		Set(goqu.Record{
			colVersion:   goqu.L(colVersion + " + 1"),
			colUpdatedAt: goqu.L(exprNow),
		}).
		Where(
			goqu.C(colID).Eq(loan.MemberID),
			goqu.C(colVersion).Eq(expectedMemberVersion),
			goqu.C(colIsActive).IsTrue(),
			goqu.L(exprNotExists, loanProbeStmt),
		).
		Returning(colID)

	copyClaimedStmt := builder.
		Update(ls.booksTable()).
		Set(goqu.Record{
			colAvailableCopies: goqu.L(colAvailableCopies + " - 1"),
			colUpdatedAt:       goqu.L(exprNow),
		}).
		Where(
			goqu.C(colID).Eq(loan.BookID),
			goqu.C(colAvailableCopies).Gt(0),
			goqu.L(exprExists, builder.From(cteMemberGuard).Select(goqu.L("1"))),
		).
		Returning(colID)

	insertStmt := builder.
		Insert(ls.loansTable()).
		Cols(
			colID, colBookID, colMemberID, colCheckedOutOn, colDueOn,
			colReturnCondition, colNotes, colFinePaid).
		FromQuery(
			builder.From(cteCopyClaimed).
				Select(
					goqu.L(castUUID, loan.ID),
					goqu.L(castUUID, loan.BookID),
					goqu.L(castUUID, loan.MemberID),
					goqu.L(castDate, loan.CheckedOutOn),
					goqu.L(castDate, loan.DueOn),
					goqu.V(""), goqu.V(""), goqu.V(false),
				),
		).
		With(cteMemberGuard, memberGuardStmt).
		With(cteCopyClaimed, copyClaimedStmt)

	sqlStatement, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(librarystore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlStatement, nil
}

// ReturnBook closes a loan and puts the copy back on the shelf in one guarded
// statement. The loan row is the serialization point: it only closes while it
// is still open and while the book has shelf space for the returned copy, and
// the outer update then increments the book's availability.
func (ls LibraryStore) ReturnBook(
	ctx context.Context,
	loanID core.LoanIDString,
	returnedOn core.DateUTC,
	condition core.ReturnConditionString,
	notes string,
) error {
	obs, obsCtx := ls.startWriteObservation(ctx, opReturnBook)

	sqlStatement, buildErr := ls.buildReturnBookStatement(loanID, returnedOn, condition, notes)
	if buildErr != nil {
		ls.logError(obsCtx, logMsgBuildStatementFailed, buildErr)
		obs.finishError(errorTypeBuildStatement)

		return buildErr
	}

	rowsAffected, execErr := ls.executeWrite(obsCtx, sqlStatement)
	if execErr != nil {
		obs.finishError(errorTypeExec)

		return execErr
	}

	return ls.validateWriteResult(obs, rowsAffected)
}

func (ls LibraryStore) buildReturnBookStatement(
	loanID core.LoanIDString,
	returnedOn core.DateUTC,
	condition core.ReturnConditionString,
	notes string,
) (sqlStatementString, error) {
	builder := goqu.Dialect(dialectPostgres)
	books := ls.booksTable()
	loans := ls.loansTable()

	shelfSpaceProbeStmt := builder.
		From(books).
		Select(goqu.L("1")).
		Where(
			goqu.I(books+"."+colID).Eq(goqu.I(loans+"."+colBookID)),
			goqu.I(books+"."+colAvailableCopies).Lt(goqu.I(books+"."+colTotalCopies)),
		)

	loanClosedStmt := builder.
		Update(loans).
		Set(goqu.Record{
			colReturnedOn:      goqu.L(castDate, returnedOn),
			colReturnCondition: condition,
			colNotes:           notes,
			colUpdatedAt:       goqu.L(exprNow),
		}).
		Where(
			goqu.C(colID).Eq(loanID),
			goqu.C(colReturnedOn).IsNull(),
			goqu.L(exprExists, shelfSpaceProbeStmt),
		).
		Returning(colBookID)

	updateStmt := builder.
		Update(books).
		Set(goqu.Record{
			colAvailableCopies: goqu.L(colAvailableCopies + " + 1"),
			colUpdatedAt:       goqu.L(exprNow),
		}).
		Where(
			goqu.C(colID).In(builder.From(cteLoanClosed).Select(colBookID)),
			goqu.C(colAvailableCopies).Lt(goqu.I(colTotalCopies)),
		).
		With(cteLoanClosed, loanClosedStmt)

	sqlStatement, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(librarystore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlStatement, nil
}

// SettleFine marks the fine on a returned loan as paid, guarded so an open
// loan or an already settled fine affects no rows.
func (ls LibraryStore) SettleFine(ctx context.Context, loanID core.LoanIDString) error {
	obs, obsCtx := ls.startWriteObservation(ctx, opSettleFine)

	sqlStatement, buildErr := ls.buildSettleFineStatement(loanID)
	if buildErr != nil {
		ls.logError(obsCtx, logMsgBuildStatementFailed, buildErr)
		obs.finishError(errorTypeBuildStatement)

		return buildErr
	}

	rowsAffected, execErr := ls.executeWrite(obsCtx, sqlStatement)
	if execErr != nil {
		obs.finishError(errorTypeExec)

		return execErr
	}

	return ls.validateWriteResult(obs, rowsAffected)
}

func (ls LibraryStore) buildSettleFineStatement(loanID core.LoanIDString) (sqlStatementString, error) {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(ls.loansTable()).
		Set(goqu.Record{
			colFinePaid:  true,
			colUpdatedAt: goqu.L(exprNow),
		}).
		Where(
			goqu.C(colID).Eq(loanID),
			goqu.C(colReturnedOn).IsNotNull(),
			goqu.C(colFinePaid).IsFalse(),
		)

	sqlStatement, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(librarystore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlStatement, nil
}
