// Package emit writes a finished firing sequence in the formats consumed
// downstream.
//
// # Charge modules
//
// Every activation slot becomes a [Module]: a row of shulker boxes holding
// one item per shot, tnt when the slot fires and ice when it does not.
// [Pack] builds the modules from a sequence; [WriteFunction] turns them into
// a Minecraft function file of give commands.
//
// # JSON
//
// [WriteJSON] writes a [Plan] document with the run metrics, the chosen
// orientation and every shot with its cost and activation vector.
package emit
