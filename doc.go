/*

Package vault defines interfaces used throughout the app, such as: storage, transactions, handlers etc.
It also contains the address and condition types, the request context helpers, the event log
that is exported as ABCI tags, and helpers to turn results and errors into ABCI responses.

The multisig wallet itself lives in x/wallet, the gas token ledger in x/token and the ABCI
application that glues them together in app.

*/

package vault
