package wallet

import (
	"strconv"

	"github.com/iov-one/vault"
)

// Names of all events emitted by the wallet.
const (
	EventConfirmation      = "Confirmation"
	EventRevocation        = "Revocation"
	EventSubmission        = "Submission"
	EventExecution         = "Execution"
	EventExecutionFailure  = "ExecutionFailure"
	EventOwnerAddition     = "OwnerAddition"
	EventOwnerRemoval      = "OwnerRemoval"
	EventRequirementChange = "RequirementChange"
	EventGasTokenAddition  = "GasTokenAddition"
)

func txID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func confirmationEvent(sender vault.Address, id int64) vault.Event {
	return vault.NewEvent(EventConfirmation, "sender", sender.String(), "transactionId", txID(id))
}

func revocationEvent(sender vault.Address, id int64) vault.Event {
	return vault.NewEvent(EventRevocation, "sender", sender.String(), "transactionId", txID(id))
}

func submissionEvent(id int64) vault.Event {
	return vault.NewEvent(EventSubmission, "transactionId", txID(id))
}

func executionEvent(id int64, succeeded bool) vault.Event {
	if succeeded {
		return vault.NewEvent(EventExecution, "transactionId", txID(id))
	}
	return vault.NewEvent(EventExecutionFailure, "transactionId", txID(id))
}

func ownerAdditionEvent(owner vault.Address) vault.Event {
	return vault.NewEvent(EventOwnerAddition, "owner", owner.String())
}

func ownerRemovalEvent(owner vault.Address) vault.Event {
	return vault.NewEvent(EventOwnerRemoval, "owner", owner.String())
}

func requirementChangeEvent(required int32) vault.Event {
	return vault.NewEvent(EventRequirementChange, "required", strconv.Itoa(int(required)))
}

func gasTokenAdditionEvent(token vault.Address) vault.Event {
	return vault.NewEvent(EventGasTokenAddition, "gasTokenAddress", token.String())
}
