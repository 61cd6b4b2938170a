/*
Package wallet implements the balance mutation engine.

Every operation runs inside a single storage transaction: the idempotency
key is checked, the account row is locked, the new balance is computed and
both the account snapshot and the ledger entry are written before commit.
An operation either fully commits or leaves no trace.

Usage:

	svc := wallet.NewService(repo, cacheService, nil)

	result, err := svc.Credit(ctx, wallet.Operation{
	    AccountID:      accountID,
	    Amount:         5000,
	    IdempotencyKey: "order-1234",
	})

Error Handling:

Failures are typed so callers can map them to protocol responses:
  - *AccountNotFoundError: the target account does not exist
  - *InsufficientFundsError: a debit would drive the balance negative
  - *DuplicateOperationError: the idempotency key was already used; carries
    the prior transaction id so the caller can fetch the original result
  - *StorageError: transient storage failure, safe to retry the whole call

Concurrency:

Operations on the same account serialize on the row lock; operations on
different accounts never contend. The engine performs no internal retries.
*/
package wallet
