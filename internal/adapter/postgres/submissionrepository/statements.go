package submissionrepository

import (
	"gitlab.com/codejudge.net/internal/domain"
	querybuilder "gitlab.com/codejudge.net/internal/utils"
)

type statement struct {
	name  string
	query string
	args  []interface{}
}

// saveGradedStatements returns the inserts of SaveGraded in execution order:
// submission, solved marker (only when solved), test case results.
func saveGradedStatements(schema string, graded *domain.GradedSubmission) ([]statement, error) {
	sub := graded.Submission
	subTbl := domain.GetSubmissionTable()

	query, args, err := querybuilder.NewQueryBuilder(schema).
		Insert(
			subTbl.ID, subTbl.UserID, subTbl.ProblemID, subTbl.SourceCode, subTbl.Language,
			subTbl.Stdin, subTbl.Stdout, subTbl.Stderr, subTbl.CompileOutput, subTbl.Status,
			subTbl.Memory, subTbl.Time, subTbl.CreatedAt,
		).
		Into(subTbl.TableName()).
		Values(
			sub.ID, sub.UserID, sub.ProblemID, sub.SourceCode, sub.Language,
			sub.Stdin, sub.Stdout, sub.Stderr, sub.CompileOutput, sub.Status,
			sub.Memory, sub.Time, sub.CreatedAt,
		).
		Build()
	if err != nil {
		return nil, err
	}
	statements := []statement{{name: "submission", query: query, args: args}}

	if graded.Solved {
		solvedTbl := domain.GetProblemSolvedTable()
		query, args, err = querybuilder.NewQueryBuilder(schema).
			Insert(solvedTbl.UserID, solvedTbl.ProblemID, solvedTbl.CreatedAt).
			Into(solvedTbl.TableName()).
			Values(sub.UserID, sub.ProblemID, sub.CreatedAt).
			OnConflict(solvedTbl.UserID, solvedTbl.ProblemID).
			DoNothing().
			Build()
		if err != nil {
			return nil, err
		}
		statements = append(statements, statement{name: "problem_solved", query: query, args: args})
	}

	if len(graded.Results) > 0 {
		resTbl := domain.GetTestCaseResultTable()
		qb := querybuilder.NewQueryBuilder(schema).
			Insert(
				resTbl.ID, resTbl.SubmissionID, resTbl.TestCase, resTbl.Passed, resTbl.Stdout, resTbl.Expected,
				resTbl.Stderr, resTbl.CompileOutput, resTbl.Status, resTbl.Memory, resTbl.Time, resTbl.CreatedAt,
			).
			Into(resTbl.TableName())
		for _, res := range graded.Results {
			qb.Values(
				res.ID, res.SubmissionID, res.TestCase, res.Passed, res.Stdout, res.Expected,
				res.Stderr, res.CompileOutput, res.Status, res.Memory, res.Time, res.CreatedAt,
			)
		}
		query, args, err = qb.Build()
		if err != nil {
			return nil, err
		}
		statements = append(statements, statement{name: "test_case_results", query: query, args: args})
	}

	return statements, nil
}
