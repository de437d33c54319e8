package templates

import "tableflip.dev/planner/pkg/model"

var catalog = []Template{
	{
		Title:       "Book Wedding Venue",
		Description: "Research and book ceremony and reception venue. Consider capacity, location, and availability.",
		Price:       5000,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryVenue,
		Icon:        "building",
		EventTypes:  []model.EventType{model.EventWedding},
	},
	{
		Title:       "Hire Photographer",
		Description: "Find and book wedding photographer. Review portfolios, packages, and pricing.",
		Price:       3000,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryPhotography,
		Icon:        "camera",
		EventTypes:  []model.EventType{model.EventWedding},
	},
	{
		Title:       "Hire Videographer",
		Description: "Book wedding videographer for ceremony and reception coverage.",
		Price:       2500,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryPhotography,
		Icon:        "video",
		EventTypes:  []model.EventType{model.EventWedding},
	},
	{
		Title:       "Book Catering Service",
		Description: "Select and book catering service for reception. Menu tasting and finalize choices.",
		Price:       4000,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryCatering,
		Icon:        "utensils",
		EventTypes:  []model.EventType{model.EventWedding},
	},
	{
		Title:       "Order Wedding Cake",
		Description: "Choose and order wedding cake. Schedule tastings and finalize design.",
		Price:       500,
		Priority:    model.PriorityMedium,
		Category:    model.CategoryCatering,
		Icon:        "cake",
		EventTypes:  []model.EventType{model.EventWedding},
	},
	{
		Title:       "Hire Makeup Artist",
		Description: "Book professional makeup artist for bride and bridal party.",
		Price:       800,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryMakeup,
		Icon:        "sparkles",
		EventTypes:  []model.EventType{model.EventWedding},
	},
	{
		Title:       "Book Hair Stylist",
		Description: "Hire hairstylist for bride and bridal party hair styling.",
		Price:       600,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryMakeup,
		Icon:        "scissors",
		EventTypes:  []model.EventType{model.EventWedding},
	},
	{
		Title:       "Book Florist",
		Description: "Select florist for bouquets, centerpieces, and ceremony decorations.",
		Price:       2000,
		Priority:    model.PriorityMedium,
		Category:    model.CategoryFlowers,
		Icon:        "flower",
		EventTypes:  []model.EventType{model.EventWedding},
	},
	{
		Title:       "Order Wedding Decorations",
		Description: "Purchase or rent wedding decorations, centerpieces, and ceremony decor.",
		Price:       1500,
		Priority:    model.PriorityMedium,
		Category:    model.CategoryFlowers,
		Icon:        "sparkles",
		EventTypes:  []model.EventType{model.EventWedding},
	},
	{
		Title:       "Hire DJ",
		Description: "Book DJ or live music for reception entertainment.",
		Price:       1200,
		Priority:    model.PriorityMedium,
		Category:    model.CategoryMusic,
		Icon:        "music",
		EventTypes:  []model.EventType{model.EventWedding},
	},
	{
		Title:       "Book Live Band",
		Description: "Hire live band for reception entertainment.",
		Price:       3000,
		Priority:    model.PriorityMedium,
		Category:    model.CategoryMusic,
		Icon:        "music",
		EventTypes:  []model.EventType{model.EventWedding},
	},
	{
		Title:       "Buy Wedding Dress",
		Description: "Shop for and purchase wedding dress. Schedule fittings and alterations.",
		Price:       2000,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryAttire,
		Icon:        "shirt",
		EventTypes:  []model.EventType{model.EventWedding},
	},
	{
		Title:       "Buy Groom's Suit",
		Description: "Purchase or rent groom's suit and accessories.",
		Price:       800,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryAttire,
		Icon:        "shirt",
		EventTypes:  []model.EventType{model.EventWedding},
	},
	{
		Title:       "Order Bridesmaid Dresses",
		Description: "Select and order bridesmaid dresses. Coordinate sizes and colors.",
		Price:       1200,
		Priority:    model.PriorityMedium,
		Category:    model.CategoryAttire,
		Icon:        "shirt",
		EventTypes:  []model.EventType{model.EventWedding},
	},
	{
		Title:       "Book Limousine",
		Description: "Reserve limousine or transportation for wedding day.",
		Price:       600,
		Priority:    model.PriorityMedium,
		Category:    model.CategoryTransportation,
		Icon:        "car",
		EventTypes:  []model.EventType{model.EventWedding},
	},
	{
		Title:       "Send Wedding Invitations",
		Description: "Design, print, and send wedding invitations to guests.",
		Price:       300,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryVenue,
		Icon:        "mail",
		EventTypes:  []model.EventType{model.EventWedding},
	},
	{
		Title:       "Book Officiant",
		Description: "Hire wedding officiant for ceremony.",
		Price:       400,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryVenue,
		Icon:        "user",
		EventTypes:  []model.EventType{model.EventWedding},
	},
	{
		Title:       "Order Wedding Rings",
		Description: "Select and purchase wedding bands for bride and groom.",
		Price:       1500,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryAttire,
		Icon:        "ring",
		EventTypes:  []model.EventType{model.EventWedding},
	},
	{
		Title:       "Book Birthday Venue",
		Description: "Find and book a venue for the birthday celebration.",
		Price:       500,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryVenue,
		Icon:        "building",
		EventTypes:  []model.EventType{model.EventBirthday},
	},
	{
		Title:       "Order Birthday Cake",
		Description: "Order a custom birthday cake with design preferences.",
		Price:       150,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryCatering,
		Icon:        "cake",
		EventTypes:  []model.EventType{model.EventBirthday},
	},
	{
		Title:       "Hire Photographer",
		Description: "Book a photographer to capture birthday moments.",
		Price:       400,
		Priority:    model.PriorityMedium,
		Category:    model.CategoryPhotography,
		Icon:        "camera",
		EventTypes:  []model.EventType{model.EventBirthday},
	},
	{
		Title:       "Book Entertainment",
		Description: "Hire DJ, magician, or other entertainment for the party.",
		Price:       300,
		Priority:    model.PriorityMedium,
		Category:    model.CategoryMusic,
		Icon:        "music",
		EventTypes:  []model.EventType{model.EventBirthday},
	},
	{
		Title:       "Send Invitations",
		Description: "Design and send birthday party invitations.",
		Price:       50,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryVenue,
		Icon:        "mail",
		EventTypes:  []model.EventType{model.EventBirthday},
	},
	{
		Title:       "Buy Decorations",
		Description: "Purchase party decorations, balloons, and party supplies.",
		Price:       200,
		Priority:    model.PriorityMedium,
		Category:    model.CategoryFlowers,
		Icon:        "sparkles",
		EventTypes:  []model.EventType{model.EventBirthday},
	},
	{
		Title:       "Book Conference Venue",
		Description: "Reserve meeting space or conference hall.",
		Price:       2000,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryVenue,
		Icon:        "building",
		EventTypes:  []model.EventType{model.EventCorporate},
	},
	{
		Title:       "Arrange Catering",
		Description: "Organize catering for corporate event attendees.",
		Price:       1500,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryCatering,
		Icon:        "utensils",
		EventTypes:  []model.EventType{model.EventCorporate},
	},
	{
		Title:       "Book Audio/Visual Equipment",
		Description: "Rent AV equipment for presentations.",
		Price:       800,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryMusic,
		Icon:        "video",
		EventTypes:  []model.EventType{model.EventCorporate},
	},
	{
		Title:       "Send Event Invitations",
		Description: "Send invitations to corporate event attendees.",
		Price:       100,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryVenue,
		Icon:        "mail",
		EventTypes:  []model.EventType{model.EventCorporate},
	},
	{
		Title:       "Book Anniversary Venue",
		Description: "Reserve a special venue for anniversary celebration.",
		Price:       800,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryVenue,
		Icon:        "building",
		EventTypes:  []model.EventType{model.EventAnniversary},
	},
	{
		Title:       "Order Anniversary Cake",
		Description: "Order a special anniversary cake.",
		Price:       100,
		Priority:    model.PriorityMedium,
		Category:    model.CategoryCatering,
		Icon:        "cake",
		EventTypes:  []model.EventType{model.EventAnniversary},
	},
	{
		Title:       "Book Photographer",
		Description: "Hire photographer for anniversary photos.",
		Price:       500,
		Priority:    model.PriorityMedium,
		Category:    model.CategoryPhotography,
		Icon:        "camera",
		EventTypes:  []model.EventType{model.EventAnniversary},
	},
	{
		Title:       "Book Restaurant",
		Description: "Make restaurant reservations for anniversary dinner.",
		Price:       300,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryCatering,
		Icon:        "utensils",
		EventTypes:  []model.EventType{model.EventAnniversary},
	},
	{
		Title:       "Book Graduation Venue",
		Description: "Reserve venue for graduation party.",
		Price:       600,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryVenue,
		Icon:        "building",
		EventTypes:  []model.EventType{model.EventGraduation},
	},
	{
		Title:       "Order Graduation Cake",
		Description: "Order graduation celebration cake.",
		Price:       120,
		Priority:    model.PriorityMedium,
		Category:    model.CategoryCatering,
		Icon:        "cake",
		EventTypes:  []model.EventType{model.EventGraduation},
	},
	{
		Title:       "Hire Photographer",
		Description: "Book photographer for graduation photos.",
		Price:       400,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryPhotography,
		Icon:        "camera",
		EventTypes:  []model.EventType{model.EventGraduation},
	},
	{
		Title:       "Send Graduation Invitations",
		Description: "Send invitations to graduation celebration.",
		Price:       60,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryVenue,
		Icon:        "mail",
		EventTypes:  []model.EventType{model.EventGraduation},
	},
	{
		Title:       "Book Baby Shower Venue",
		Description: "Reserve venue for baby shower celebration.",
		Price:       400,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryVenue,
		Icon:        "building",
		EventTypes:  []model.EventType{model.EventBabyShower},
	},
	{
		Title:       "Order Baby Shower Cake",
		Description: "Order themed baby shower cake.",
		Price:       100,
		Priority:    model.PriorityMedium,
		Category:    model.CategoryCatering,
		Icon:        "cake",
		EventTypes:  []model.EventType{model.EventBabyShower},
	},
	{
		Title:       "Buy Decorations",
		Description: "Purchase baby shower decorations and party supplies.",
		Price:       150,
		Priority:    model.PriorityMedium,
		Category:    model.CategoryFlowers,
		Icon:        "sparkles",
		EventTypes:  []model.EventType{model.EventBabyShower},
	},
	{
		Title:       "Send Invitations",
		Description: "Send baby shower invitations to guests.",
		Price:       40,
		Priority:    model.PriorityHigh,
		Category:    model.CategoryVenue,
		Icon:        "mail",
		EventTypes:  []model.EventType{model.EventBabyShower},
	},
}
