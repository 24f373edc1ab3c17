/*
Package wallet implements a multi owner custodial wallet.

A fixed set of owners jointly authorizes outgoing calls. Any owner can
submit a transaction, which counts as the first confirmation. Once the
number of confirmations from current owners reaches the required
threshold, the transaction is executed: its value and payload are handed
to the Dispatcher. A failed dispatch still marks the transaction as
executed so that a deterministic failure cannot be retried forever.

The wallet reconfigures itself only through its own transactions. A
transaction whose destination is the wallet address carries an encoded
administrative call (add, remove or replace an owner, change the
requirement, configure the gas token). The engine applies such call
holding an Authority, which no other code path can obtain. The same
calls sent directly fail with an unauthorized error.

Transactions can reserve an amount of the configured gas token. The sum
of reservations of pending transactions never exceeds the gas token
balance of the wallet and each reservation is released when its
transaction is executed.
*/
package wallet
