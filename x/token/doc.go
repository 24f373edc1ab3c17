/*
Package token keeps the balances of fungible tokens. Each token is
identified by an address derived from its ticker. Tokens are registered
by the issuer configured for the application, and only the token issuer
can mint new units. Balances can be moved by their holder.

The wallet uses this package as its gas token ledger and the application
dispatcher uses it to move native value.
*/
package token
