package discord

// Friendly message constants for Discord responses
const (
	// Economy
	MsgInsufficientFunds = "⚠️ **Not Enough Money!**\nYou don't have enough coins for this."

	// Items & Inventory
	MsgItemNotFound   = "❓ **Item Not Found**\nMaybe check the spelling?"
	MsgNotEnoughItems = "🎒 **Not Enough Items**\nYou don't have enough of that item."
	MsgNotUsable      = "🚫 **Can't Use That**\nThat item has no use."
	MsgOutOfStock     = "📦 **Out of Stock**\nThe shop has run out of those."

	// Backpacks
	MsgBackpackNotFound = "🎒 **Backpack Not Found**\nNo backpack by that name is open to you."
	MsgBackpackFull     = "🎒 **Backpack Full**\nNo free slots for a new item."
	MsgBackpackNotEmpty = "🎒 **Backpack Not Empty**\nEmpty it out before deleting."
	MsgDuplicateName    = "📛 **Name Taken**\nYou already have one with that name."
	MsgNotOwner         = "🔒 **Owner Only**\nOnly the owner can do that."

	// User
	MsgUserNotFound = "👤 **User Not Found**\nHave they registered yet?"

	MsgGenericError = "❌ Something went wrong."
)
