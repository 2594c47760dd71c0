/*
NFT contract is a NEP-11 non-divisible token contract with token series and
approval management.

Tokens are minted from series. Any account can create a series by paying
its storage, series metadata is shared by all tokens minted from it. Tokens
are minted by the minting authority set on deploy only, token ID consists of
the series ID and the number of the token in the series.

Token owners can approve other accounts to transfer their tokens on their
behalf with transferFrom method. Each approval has an ID unique for the token,
so the approved account can pin the transfer to the approval it has seen.
Approvals are cleared on any ownership change.

Storage used by approvals and series is paid by attaching GAS: the owner
transfers GAS to the contract with the operation and its arguments in the
transfer data (see OnNEP17Payment). The contract keeps the price of the
occupied storage and sends the rest back immediately. When approvals are
revoked or cleared, their price is sent back to the token owner.

Contract notifications

Transfer notification. This is NEP-11 standard notification.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: tokenId
	    type: ByteArray

CreateSeries notification. It contains the ID of the new series, its
metadata, creator and price (null if absent).

	CreateSeries:
	  - name: seriesId
	    type: String
	  - name: metadata
	    type: Any
	  - name: creator
	    type: Hash160
	  - name: price
	    type: Any

SetNonMintable notification. This notification is produced when the series
creator stops minting of the series.

	SetNonMintable:
	  - name: seriesId
	    type: String

Approve notification. This notification is produced when the token owner
approves the account.

	Approve:
	  - name: tokenId
	    type: ByteArray
	  - name: owner
	    type: Hash160
	  - name: account
	    type: Hash160
	  - name: approvalId
	    type: Integer

Revoke notification. This notification is produced when the approval of the
account is revoked.

	Revoke:
	  - name: tokenId
	    type: ByteArray
	  - name: owner
	    type: Hash160
	  - name: account
	    type: Hash160

RevokeAll notification. This notification is produced when all approvals of
the token are revoked.

	RevokeAll:
	  - name: tokenId
	    type: ByteArray
	  - name: owner
	    type: Hash160
*/
package nft
