package utils

import (
	"strings"

	"github.com/iov-one/vault"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	// ActionKey tags a delivered transaction with the full message path,
	// for example wallet/confirm.
	ActionKey = "action"
	// ModuleKey tags a delivered transaction with the extension that
	// handled it, for example wallet or token.
	ModuleKey = "module"
)

// ActionTagger lets clients search or subscribe to delivered wallet and
// token transactions by message path and by module.
type ActionTagger struct{}

var _ vault.Decorator = ActionTagger{}

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along
func (ActionTagger) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx, next vault.Checker) (*vault.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver tags a successful result. Failures are returned untouched.
func (ActionTagger) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx, next vault.Deliverer) (*vault.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, actionTags(msg.Path())...)
	return res, nil
}

// actionTags returns the action tag and, for a namespaced path, the
// module tag.
func actionTags(path string) []common.KVPair {
	tags := []common.KVPair{{Key: []byte(ActionKey), Value: []byte(path)}}
	if i := strings.Index(path, "/"); i > 0 {
		tags = append(tags, common.KVPair{Key: []byte(ModuleKey), Value: []byte(path[:i])})
	}
	return tags
}
