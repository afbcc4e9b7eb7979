package handlers

import (
	"github.com/tnyamukapa/shopbot/internal/command"
	"github.com/tnyamukapa/shopbot/internal/dispatch"
)

// RegisterAll wires every category to its handler.
func RegisterAll(d *dispatch.Dispatcher) {
	d.Register(command.CategoryShopping, Customer)
	d.Register(command.CategoryCart, Customer)
	d.Register(command.CategoryOrders, Customer)
	d.Register(command.CategoryAccount, Customer)
	d.Register(command.CategoryDeals, Customer)
	d.Register(command.CategoryMerchant, Merchant)
	d.Register(command.CategoryGroup, Group)
	d.Register(command.CategoryAdmin, Admin)
	d.Register(command.CategoryEntertainment, Entertainment)
	d.Register(command.CategoryTools, Tools)
	d.Register(command.CategoryInfo, Info)
	d.Register(command.CategoryOwner, Owner)
}
