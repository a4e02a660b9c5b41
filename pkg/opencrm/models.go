package opencrm

import "time"

// CRMRecord holds the fields every OpenCRM module shares.
type CRMRecord struct {
	CRMID          int    `json:"crmid,omitempty"          mapstructure:"crmid"`
	AssignedUserID int    `json:"smownerid,omitempty"      mapstructure:"smownerid"`
	Permission     int    `json:"permission,omitempty"     mapstructure:"permission"`
	Description    string `json:"description,omitempty"    mapstructure:"description"`
	RecordID       int    `json:"record_id,omitempty"      mapstructure:"record_id"`
	RecordModule   string `json:"record_module,omitempty"  mapstructure:"record_module"`
}

// Lead is an OpenCRM lead.
type Lead struct {
	CRMRecord `mapstructure:",squash"`

	FirstName     string `json:"firstname,omitempty"     mapstructure:"firstname"`
	LastName      string `json:"lastname,omitempty"      mapstructure:"lastname"`
	Company       string `json:"company,omitempty"       mapstructure:"company"`
	Email         string `json:"email,omitempty"         mapstructure:"email"`
	Phone         string `json:"phone,omitempty"         mapstructure:"phone"`
	Mobile        string `json:"mobile,omitempty"        mapstructure:"mobile"`
	Fax           string `json:"fax,omitempty"           mapstructure:"fax"`
	HomePhone     string `json:"homephone,omitempty"     mapstructure:"homephone"`
	Designation   string `json:"designation,omitempty"   mapstructure:"designation"`
	LeadSource    string `json:"leadsource,omitempty"    mapstructure:"leadsource"`
	LeadStatus    string `json:"leadstatus,omitempty"    mapstructure:"leadstatus"`
	LeadType      string `json:"leadtype,omitempty"      mapstructure:"leadtype"`
	Industry      string `json:"industry,omitempty"      mapstructure:"industry"`
	Rating        string `json:"rating,omitempty"        mapstructure:"rating"`
	AnnualRevenue string `json:"annualrevenue,omitempty" mapstructure:"annualrevenue"`
	NoOfEmployees string `json:"noofemployees,omitempty" mapstructure:"noofemployees"`

	Lane    string `json:"lane,omitempty"    mapstructure:"lane"`
	Lane2   string `json:"lane2,omitempty"   mapstructure:"lane2"`
	City    string `json:"city,omitempty"    mapstructure:"city"`
	State   string `json:"state,omitempty"   mapstructure:"state"`
	Code    string `json:"code,omitempty"    mapstructure:"code"`
	Country string `json:"country,omitempty" mapstructure:"country"`

	Website  string    `json:"website,omitempty"  mapstructure:"website"`
	Greeting string    `json:"greeting,omitempty" mapstructure:"greeting"`
	DOB      time.Time `json:"dob"                mapstructure:"dob"`

	DoNotEmail    bool `json:"do_not_email,omitempty"  mapstructure:"do_not_email"`
	DoNotPhone    bool `json:"tps,omitempty"           mapstructure:"tps"`
	DoNotFax      bool `json:"fps,omitempty"           mapstructure:"fps"`
	DoNotLiveChat bool `json:"donotlivechat,omitempty" mapstructure:"donotlivechat"`

	ConsentToProcessing        bool      `json:"consent_to_processing,omitempty"         mapstructure:"consent_to_processing"`
	DataProcessingConsentGiven bool      `json:"data_processing_consent_given,omitempty" mapstructure:"data_processing_consent_given"`
	DateConsentGiven           time.Time `json:"date_consent_given"                      mapstructure:"date_consent_given"`
	ConsentGivenTo             string    `json:"consent_given_to,omitempty"              mapstructure:"consent_given_to"`
	RightToBeForgotten         bool      `json:"righttobeforgotten,omitempty"            mapstructure:"righttobeforgotten"`
	RightToBeForgottenDate     time.Time `json:"righttobeforgotten_date"                 mapstructure:"righttobeforgotten_date"`

	Portal         string `json:"portal,omitempty"          mapstructure:"portal"`
	Login          string `json:"login,omitempty"           mapstructure:"login"`
	Password       string `json:"-"                         mapstructure:"password"`
	PortalIsLocked bool   `json:"portal_islocked,omitempty" mapstructure:"portal_islocked"`

	Subscription string `json:"subscription,omitempty"     mapstructure:"subscription"`
	Tags         string `json:"leaddetails_tags,omitempty" mapstructure:"leaddetails_tags"`
}

// Contact is an OpenCRM contact.
type Contact struct {
	CRMRecord `mapstructure:",squash"`

	FirstName   string    `json:"firstname,omitempty"   mapstructure:"firstname"`
	LastName    string    `json:"lastname,omitempty"    mapstructure:"lastname"`
	AccountID   int       `json:"accountid,omitempty"   mapstructure:"accountid"`
	Title       string    `json:"title,omitempty"       mapstructure:"title"`
	Department  string    `json:"department,omitempty"  mapstructure:"department"`
	ContactType string    `json:"contacttype,omitempty" mapstructure:"contacttype"`
	LeadSource  string    `json:"leadsource,omitempty"  mapstructure:"leadsource"`
	Greeting    string    `json:"greeting,omitempty"    mapstructure:"greeting"`
	Birthday    time.Time `json:"birthday"              mapstructure:"birthday"`

	Email          string `json:"email,omitempty"           mapstructure:"email"`
	Email2         string `json:"email2,omitempty"          mapstructure:"email2"`
	Phone          string `json:"phone,omitempty"           mapstructure:"phone"`
	Mobile         string `json:"mobile,omitempty"          mapstructure:"mobile"`
	HomePhone      string `json:"homephone,omitempty"       mapstructure:"homephone"`
	OtherPhone     string `json:"otherphone,omitempty"      mapstructure:"otherphone"`
	Fax            string `json:"fax,omitempty"             mapstructure:"fax"`
	Assistant      string `json:"assistant,omitempty"       mapstructure:"assistant"`
	AssistantPhone string `json:"assistantphone,omitempty"  mapstructure:"assistantphone"`
	AssistantEmail string `json:"assistant_email,omitempty" mapstructure:"assistant_email"`

	MailingStreet  string `json:"mailingstreet,omitempty"  mapstructure:"mailingstreet"`
	MailingStreet2 string `json:"mailingstreet2,omitempty" mapstructure:"mailingstreet2"`
	MailingCity    string `json:"mailingcity,omitempty"    mapstructure:"mailingcity"`
	MailingState   string `json:"mailingstate,omitempty"   mapstructure:"mailingstate"`
	MailingZip     string `json:"mailingzip,omitempty"     mapstructure:"mailingzip"`
	MailingCountry string `json:"mailingcountry,omitempty" mapstructure:"mailingcountry"`

	OtherStreet  string `json:"otherstreet,omitempty"  mapstructure:"otherstreet"`
	OtherStreet2 string `json:"otherstreet2,omitempty" mapstructure:"otherstreet2"`
	OtherCity    string `json:"othercity,omitempty"    mapstructure:"othercity"`
	OtherState   string `json:"otherstate,omitempty"   mapstructure:"otherstate"`
	OtherZip     string `json:"otherzip,omitempty"     mapstructure:"otherzip"`
	OtherCountry string `json:"othercountry,omitempty" mapstructure:"othercountry"`

	AddressInherit bool   `json:"addressinherit,omitempty" mapstructure:"addressinherit"`
	ReportsTo      int    `json:"reportsto,omitempty"      mapstructure:"reportsto"`
	Folder         string `json:"folder,omitempty"         mapstructure:"folder"`

	DoNotEmail    bool `json:"do_not_email,omitempty"  mapstructure:"do_not_email"`
	DoNotPhone    bool `json:"tps,omitempty"           mapstructure:"tps"`
	DoNotFax      bool `json:"fps,omitempty"           mapstructure:"fps"`
	DoNotLiveChat bool `json:"donotlivechat,omitempty" mapstructure:"donotlivechat"`

	ConsentToProcessing        bool      `json:"consent_to_processing,omitempty"         mapstructure:"consent_to_processing"`
	DataProcessingConsentGiven bool      `json:"data_processing_consent_given,omitempty" mapstructure:"data_processing_consent_given"`
	DateConsentGiven           time.Time `json:"date_consent_given"                      mapstructure:"date_consent_given"`
	ConsentGivenTo             string    `json:"consent_given_to,omitempty"              mapstructure:"consent_given_to"`
	RightToBeForgotten         bool      `json:"righttobeforgotten,omitempty"            mapstructure:"righttobeforgotten"`
	RightToBeForgottenDate     time.Time `json:"righttobeforgotten_date"                 mapstructure:"righttobeforgotten_date"`

	Portal         string `json:"portal,omitempty"          mapstructure:"portal"`
	Login          string `json:"login,omitempty"           mapstructure:"login"`
	Password       string `json:"-"                         mapstructure:"password"`
	PortalIsLocked bool   `json:"portal_islocked,omitempty" mapstructure:"portal_islocked"`
	CanESign       bool   `json:"canesign,omitempty"        mapstructure:"canesign"`

	SupportStartDate time.Time `json:"support_start_date"             mapstructure:"support_start_date"`
	SupportEndDate   time.Time `json:"support_end_date"               mapstructure:"support_end_date"`
	SageRef          string    `json:"sage_ref,omitempty"             mapstructure:"sage_ref"`
	IncludeInSync    string    `json:"includeinsync,omitempty"        mapstructure:"includeinsync"`
	Subscription     string    `json:"subscription,omitempty"         mapstructure:"subscription"`
	Tags             string    `json:"contactdetails_tags,omitempty"  mapstructure:"contactdetails_tags"`
}

// Company is an OpenCRM company (account).
type Company struct {
	CRMRecord `mapstructure:",squash"`

	AccountName   string `json:"accountname,omitempty"   mapstructure:"accountname"`
	AccountType   string `json:"account_type,omitempty"  mapstructure:"account_type"`
	Industry      string `json:"industry,omitempty"      mapstructure:"industry"`
	Ownership     string `json:"ownership,omitempty"     mapstructure:"ownership"`
	Rating        string `json:"rating,omitempty"        mapstructure:"rating"`
	Employees     string `json:"employees,omitempty"     mapstructure:"employees"`
	AnnualRevenue string `json:"annualrevenue,omitempty" mapstructure:"annualrevenue"`
	CompanyNumber string `json:"companynumber,omitempty" mapstructure:"companynumber"`
	Proprietor    string `json:"proprietor,omitempty"    mapstructure:"proprietor"`
	ParentID      int    `json:"parentid,omitempty"      mapstructure:"parentid"`

	Email1     string `json:"email1,omitempty"     mapstructure:"email1"`
	Email2     string `json:"email2,omitempty"     mapstructure:"email2"`
	Phone      string `json:"phone,omitempty"      mapstructure:"phone"`
	OtherPhone string `json:"otherphone,omitempty" mapstructure:"otherphone"`
	Fax        string `json:"fax,omitempty"        mapstructure:"fax"`
	Website    string `json:"website,omitempty"    mapstructure:"website"`

	Street       string `json:"street,omitempty"        mapstructure:"street"`
	BillStreet2  string `json:"bill_street_2,omitempty" mapstructure:"bill_street_2"`
	City         string `json:"city,omitempty"          mapstructure:"city"`
	State        string `json:"state,omitempty"         mapstructure:"state"`
	Code         string `json:"code,omitempty"          mapstructure:"code"`
	Country      string `json:"country,omitempty"       mapstructure:"country"`
	BillEmail    string `json:"billemail,omitempty"     mapstructure:"billemail"`
	ShipStreet   string `json:"ship_street,omitempty"   mapstructure:"ship_street"`
	ShipStreet2  string `json:"ship_street_2,omitempty" mapstructure:"ship_street_2"`
	ShipCity     string `json:"ship_city,omitempty"     mapstructure:"ship_city"`
	ShipState    string `json:"ship_state,omitempty"    mapstructure:"ship_state"`
	ShipCode     string `json:"ship_code,omitempty"     mapstructure:"ship_code"`
	ShipCountry  string `json:"ship_country,omitempty"  mapstructure:"ship_country"`
	ShipEmail    string `json:"shipemail,omitempty"     mapstructure:"shipemail"`
	RegStreet    string `json:"reg_street,omitempty"    mapstructure:"reg_street"`
	RegStreet2   string `json:"reg_street_2,omitempty"  mapstructure:"reg_street_2"`
	RegCity      string `json:"reg_city,omitempty"      mapstructure:"reg_city"`
	RegState     string `json:"reg_state,omitempty"     mapstructure:"reg_state"`
	RegCode      string `json:"reg_code,omitempty"      mapstructure:"reg_code"`
	RegCountry   string `json:"reg_country,omitempty"   mapstructure:"reg_country"`
	AddressInherit bool `json:"address_inherit,omitempty" mapstructure:"address_inherit"`

	DoNotEmail bool `json:"do_not_email,omitempty" mapstructure:"do_not_email"`
	DoNotPhone bool `json:"tps,omitempty"          mapstructure:"tps"`
	DoNotFax   bool `json:"fps,omitempty"          mapstructure:"fps"`

	ConsentToProcessing        bool      `json:"consent_to_processing,omitempty"         mapstructure:"consent_to_processing"`
	DataProcessingConsentGiven bool      `json:"data_processing_consent_given,omitempty" mapstructure:"data_processing_consent_given"`
	DateConsentGiven           time.Time `json:"date_consent_given"                      mapstructure:"date_consent_given"`
	ConsentGivenTo             string    `json:"consent_given_to,omitempty"              mapstructure:"consent_given_to"`
	RightToBeForgotten         bool      `json:"righttobeforgotten,omitempty"            mapstructure:"righttobeforgotten"`
	RightToBeForgottenDate     time.Time `json:"righttobeforgotten_date"                 mapstructure:"righttobeforgotten_date"`

	SageRef     string `json:"sage_ref,omitempty"     mapstructure:"sage_ref"`
	VATNumber   string `json:"vatnumber,omitempty"    mapstructure:"vatnumber"`
	VATExempt   bool   `json:"vatexempt,omitempty"    mapstructure:"vatexempt"`
	DefCurrency string `json:"def_currency,omitempty" mapstructure:"def_currency"`
	Pricebook   int    `json:"pricebook,omitempty"    mapstructure:"pricebook"`
	Language    string `json:"language,omitempty"     mapstructure:"language"`

	PaymentType     string    `json:"paymenttype,omitempty"       mapstructure:"paymenttype"`
	CreditLimit     float64   `json:"credit_limit,omitempty"      mapstructure:"credit_limit"`
	CreditLimitDays int       `json:"credit_limit_days,omitempty" mapstructure:"credit_limit_days"`
	CreditStatus    string    `json:"credit_status,omitempty"     mapstructure:"credit_status"`
	StockFund       bool      `json:"stockfund,omitempty"         mapstructure:"stockfund"`
	CreditCheckOn   time.Time `json:"creditcheckon"               mapstructure:"creditcheckon"`
	CreditCheckBy   string    `json:"creditcheckby,omitempty"     mapstructure:"creditcheckby"`

	OutstandingBalance float64 `json:"outstanding_balance,omitempty" mapstructure:"outstanding_balance"`
	DueBalance         float64 `json:"due_balance,omitempty"         mapstructure:"due_balance"`
	OverdueBalance     float64 `json:"overdue_balance,omitempty"     mapstructure:"overdue_balance"`
	CurrentSpend       float64 `json:"currentspend,omitempty"        mapstructure:"currentspend"`
	YearToDate         float64 `json:"year_to_date,omitempty"        mapstructure:"year_to_date"`

	MajorAccount  bool   `json:"majoraccount,omitempty"  mapstructure:"majoraccount"`
	IncludeInSync bool   `json:"includeinsync,omitempty" mapstructure:"includeinsync"`
	Subscription  string `json:"subscription,omitempty"  mapstructure:"subscription"`
	Tags          string `json:"account_tags,omitempty"  mapstructure:"account_tags"`
}

// Opportunity is an OpenCRM sales opportunity.
type Opportunity struct {
	CRMRecord `mapstructure:",squash"`

	Name       string `json:"potentialname,omitempty" mapstructure:"potentialname"`
	Type       string `json:"potentialtype,omitempty" mapstructure:"potentialtype"`
	SalesStage string `json:"sales_stage,omitempty"   mapstructure:"sales_stage"`
	LeadSource string `json:"leadsource,omitempty"    mapstructure:"leadsource"`
	NextStep   string `json:"nextstep,omitempty"      mapstructure:"nextstep"`

	AccountID     int    `json:"accountid,omitempty"       mapstructure:"accountid"`
	ContactID     int    `json:"contactid,omitempty"       mapstructure:"contactid"`
	CampaignID    int    `json:"campaignid,omitempty"      mapstructure:"campaignid"`
	ProjectID     int    `json:"projectid,omitempty"       mapstructure:"projectid"`
	SingleEventID int    `json:"single_event_id,omitempty" mapstructure:"single_event_id"`
	ParentID      int    `json:"parent_id,omitempty"       mapstructure:"parent_id"`
	Email         string `json:"email,omitempty"           mapstructure:"email"`

	Amount          float64 `json:"amount,omitempty"          mapstructure:"amount"`
	PreviousAmount  float64 `json:"previous_amount,omitempty" mapstructure:"previous_amount"`
	GainLoss        float64 `json:"gain_loss,omitempty"       mapstructure:"gain_loss"`
	WeightedAmount  float64 `json:"weightedamount,omitempty"  mapstructure:"weightedamount"`
	Probability     int     `json:"probability,omitempty"     mapstructure:"probability"`
	SalesCommission float64 `json:"salescommission,omitempty" mapstructure:"salescommission"`

	StartDate   time.Time `json:"start_date"           mapstructure:"start_date"`
	ClosingDate time.Time `json:"closingdate"          mapstructure:"closingdate"`
	ActiveDays  int       `json:"activedays,omitempty" mapstructure:"activedays"`

	CommissionApproved     bool      `json:"commission_approved,omitempty" mapstructure:"commission_approved"`
	CommissionApprovedDate time.Time `json:"commission_approved_date"      mapstructure:"commission_approved_date"`

	DefCurrency string `json:"def_currency,omitempty" mapstructure:"def_currency"`
	CostCentre  string `json:"cost_centre,omitempty"  mapstructure:"cost_centre"`
	VATRate     int    `json:"vat_rate,omitempty"     mapstructure:"vat_rate"`

	Tags           string    `json:"potential_tags,omitempty" mapstructure:"potential_tags"`
	ActionPlanID   int       `json:"actionplan_id,omitempty"  mapstructure:"actionplan_id"`
	EmailPlan      int       `json:"emailplan,omitempty"      mapstructure:"emailplan"`
	ReassignedDate time.Time `json:"reassigned_date"          mapstructure:"reassigned_date"`
}

// Product is an OpenCRM product.
type Product struct {
	CRMRecord `mapstructure:",squash"`

	Name               string `json:"productname,omitempty"         mapstructure:"productname"`
	Code               string `json:"productcode,omitempty"         mapstructure:"productcode"`
	Category           string `json:"productcategory,omitempty"     mapstructure:"productcategory"`
	Status             string `json:"product_status,omitempty"      mapstructure:"product_status"`
	SubProductType     string `json:"subproducttype,omitempty"      mapstructure:"subproducttype"`
	Discontinued       bool   `json:"discontinued,omitempty"        mapstructure:"discontinued"`
	ProductDescription string `json:"product_description,omitempty" mapstructure:"product_description"`
	MiniDescription    string `json:"mini_description,omitempty"    mapstructure:"mini_description"`

	UnitPrice      float64 `json:"unit_price,omitempty"      mapstructure:"unit_price"`
	BuyPrice       float64 `json:"buy_price,omitempty"       mapstructure:"buy_price"`
	CommissionRate int     `json:"commissionrate,omitempty"  mapstructure:"commissionrate"`
	CommissionBand string  `json:"commission_band,omitempty" mapstructure:"commission_band"`

	Manufacturer string `json:"manufacturer,omitempty"   mapstructure:"manufacturer"`
	VendorID     int    `json:"vendor_id,omitempty"      mapstructure:"vendor_id"`
	VendorPartNo string `json:"vendor_part_no,omitempty" mapstructure:"vendor_part_no"`

	QtyInStock   int    `json:"qtyinstock,omitempty"   mapstructure:"qtyinstock"`
	QtyInDemand  int    `json:"qtyindemand,omitempty"  mapstructure:"qtyindemand"`
	ReorderLevel string `json:"reorderlevel,omitempty" mapstructure:"reorderlevel"`
	QtyPerUnit   int    `json:"qty_per_unit,omitempty" mapstructure:"qty_per_unit"`

	Warehouse string `json:"location_warehouse,omitempty" mapstructure:"location_warehouse"`
	Shelf     string `json:"location_shelf,omitempty"     mapstructure:"location_shelf"`
	Bin       string `json:"location_bin,omitempty"       mapstructure:"location_bin"`

	SerialNo      string `json:"serialno,omitempty"       mapstructure:"serialno"`
	BatchNumber   string `json:"batch_number,omitempty"   mapstructure:"batch_number"`
	ModelRevision string `json:"model_revision,omitempty" mapstructure:"model_revision"`

	SalesStartDate time.Time `json:"sales_start_date" mapstructure:"sales_start_date"`
	SalesEndDate   time.Time `json:"sales_end_date"   mapstructure:"sales_end_date"`
	StartDate      time.Time `json:"start_date"       mapstructure:"start_date"`
	ExpiryDate     time.Time `json:"expiry_date"      mapstructure:"expiry_date"`
	DateIn         time.Time `json:"datein"           mapstructure:"datein"`
	DespatchDate   time.Time `json:"despatchdate"     mapstructure:"despatchdate"`
	PriceCheckDate time.Time `json:"price_check_date" mapstructure:"price_check_date"`

	ContractTerm int `json:"contract_term,omitempty" mapstructure:"contract_term"`

	NominalCode     string `json:"nominal_code,omitempty"   mapstructure:"nominal_code"`
	PurchaseNomCode string `json:"purch_nom_code,omitempty" mapstructure:"purch_nom_code"`
	PurchaseNomDesc string `json:"purch_nom_desc,omitempty" mapstructure:"purch_nom_desc"`
	GLAccount       string `json:"glacct,omitempty"         mapstructure:"glacct"`
	TaxClass        string `json:"taxclass,omitempty"       mapstructure:"taxclass"`
	DefCurrency     string `json:"def_currency,omitempty"   mapstructure:"def_currency"`

	UsageUnit     int    `json:"usageunit,omitempty"       mapstructure:"usageunit"`
	Size          string `json:"size,omitempty"            mapstructure:"size"`
	WeightStock   int    `json:"weight_stock,omitempty"    mapstructure:"weight_stock"`
	SupplyType    string `json:"prod_supplytype,omitempty" mapstructure:"prod_supplytype"`
	BundleProduct string `json:"bundle_product,omitempty"  mapstructure:"bundle_product"`

	Website      string `json:"website,omitempty"      mapstructure:"website"`
	ProductSheet string `json:"productsheet,omitempty" mapstructure:"productsheet"`

	ParentProductID int `json:"parentprodid,omitempty" mapstructure:"parentprodid"`
	CustomerID      int `json:"customerid,omitempty"   mapstructure:"customerid"`
	InstallerID     int `json:"installerid,omitempty"  mapstructure:"installerid"`

	Tags           string    `json:"products_tags,omitempty" mapstructure:"products_tags"`
	ReassignedDate time.Time `json:"reassigned_date"         mapstructure:"reassigned_date"`
}

// Project is an OpenCRM project.
type Project struct {
	CRMRecord `mapstructure:",squash"`

	Name     string `json:"name,omitempty"          mapstructure:"name"`
	Number   string `json:"projectnum,omitempty"    mapstructure:"projectnum"`
	Type     string `json:"projecttype,omitempty"   mapstructure:"projecttype"`
	Status   string `json:"projectstatus,omitempty" mapstructure:"projectstatus"`
	Priority string `json:"projpriority,omitempty"  mapstructure:"projpriority"`

	AccountID    int    `json:"accountid,omitempty"     mapstructure:"accountid"`
	ContactID    int    `json:"contactid,omitempty"     mapstructure:"contactid"`
	SalesOrderID int    `json:"salesorder_id,omitempty" mapstructure:"salesorder_id"`
	ParentID     int    `json:"parent_id,omitempty"     mapstructure:"parent_id"`
	Email        string `json:"email,omitempty"         mapstructure:"email"`

	StartDate time.Time `json:"startdate" mapstructure:"startdate"`
	EndDate   time.Time `json:"enddate"   mapstructure:"enddate"`
	TargetEnd time.Time `json:"targetend" mapstructure:"targetend"`

	Budget    float64 `json:"budget,omitempty"     mapstructure:"budget"`
	CostNet   float64 `json:"cost_net,omitempty"   mapstructure:"cost_net"`
	CostGross float64 `json:"cost_gross,omitempty" mapstructure:"cost_gross"`
	VATRate   string  `json:"vat_rate,omitempty"   mapstructure:"vat_rate"`

	TimeMinutes          string `json:"time_m,omitempty"       mapstructure:"time_m"`
	TimeTakenMinutes     int    `json:"time_taken_m,omitempty" mapstructure:"time_taken_m"`
	NonChargeableMinutes int    `json:"nc_time_m,omitempty"    mapstructure:"nc_time_m"`
	ScheduledMinutes     int    `json:"sched_time_m,omitempty" mapstructure:"sched_time_m"`

	Active           bool `json:"active,omitempty"           mapstructure:"active"`
	Private          bool `json:"private,omitempty"          mapstructure:"private"`
	ShowOnPortal     bool `json:"showonportal,omitempty"     mapstructure:"showonportal"`
	ShowDocsOnPortal bool `json:"showdocsonportal,omitempty" mapstructure:"showdocsonportal"`

	Tags           string    `json:"projects_tags,omitempty" mapstructure:"projects_tags"`
	ActionPlanID   int       `json:"actionplan_id,omitempty" mapstructure:"actionplan_id"`
	EmailPlan      int       `json:"emailplan,omitempty"     mapstructure:"emailplan"`
	ReassignedDate time.Time `json:"reassigned_date"         mapstructure:"reassigned_date"`
}

// Ticket is an OpenCRM helpdesk ticket.
type Ticket struct {
	CRMRecord `mapstructure:",squash"`

	Title        string `json:"title,omitempty"         mapstructure:"title"`
	Status       string `json:"status,omitempty"        mapstructure:"status"`
	Priority     string `json:"priority,omitempty"      mapstructure:"priority"`
	Severity     string `json:"severity,omitempty"      mapstructure:"severity"`
	Category     string `json:"category,omitempty"      mapstructure:"category"`
	SupportQueue string `json:"support_queue,omitempty" mapstructure:"support_queue"`

	ContactID     int `json:"contactid,omitempty"       mapstructure:"contactid"`
	ParentID      int `json:"parent_id,omitempty"       mapstructure:"parent_id"`
	ExtraParentID int `json:"extra_parent_id,omitempty" mapstructure:"extra_parent_id"`
	ContractID    int `json:"contractid,omitempty"      mapstructure:"contractid"`
	ProjectID     int `json:"projectid,omitempty"       mapstructure:"projectid"`
	ProductID     int `json:"product_id,omitempty"      mapstructure:"product_id"`
	AssetID       int `json:"single_asset_id,omitempty" mapstructure:"single_asset_id"`

	Solution     string `json:"solution,omitempty"      mapstructure:"solution"`
	TechSolution string `json:"tech_solution,omitempty" mapstructure:"tech_solution"`

	ClosedOn time.Time `json:"closedon"           mapstructure:"closedon"`
	ClosedBy string    `json:"closedby,omitempty" mapstructure:"closedby"`
	OpenedBy string    `json:"openedby,omitempty" mapstructure:"openedby"`

	CostNet   float64 `json:"cost_net,omitempty"   mapstructure:"cost_net"`
	CostGross float64 `json:"cost_gross,omitempty" mapstructure:"cost_gross"`

	ShowOnPortal       bool   `json:"showonportal,omitempty"          mapstructure:"showonportal"`
	EmailTo            string `json:"email_to,omitempty"              mapstructure:"email_to"`
	SentToSupportEmail string `json:"sent_to_support_email,omitempty" mapstructure:"sent_to_support_email"`

	Tags           string    `json:"troubletickets_tags,omitempty" mapstructure:"troubletickets_tags"`
	ActionPlanID   int       `json:"actionplan_id,omitempty"       mapstructure:"actionplan_id"`
	EmailPlan      int       `json:"emailplan,omitempty"           mapstructure:"emailplan"`
	ReassignedDate time.Time `json:"reassigned_date"               mapstructure:"reassigned_date"`
}

// Activity is an OpenCRM activity (task, call, meeting).
type Activity struct {
	CRMRecord `mapstructure:",squash"`

	Subject  string `json:"subject,omitempty"      mapstructure:"subject"`
	Status   string `json:"taskstatus,omitempty"   mapstructure:"taskstatus"`
	Priority string `json:"taskpriority,omitempty" mapstructure:"taskpriority"`

	DateStart     time.Time `json:"date_start"               mapstructure:"date_start"`
	DueDate       time.Time `json:"due_date"                 mapstructure:"due_date"`
	DurationHours int       `json:"duration_hours,omitempty" mapstructure:"duration_hours"`

	ParentID  int `json:"parent_id,omitempty"       mapstructure:"parent_id"`
	ContactID int `json:"contact_id,omitempty"      mapstructure:"contact_id"`
	AccountID int `json:"accountid,omitempty"       mapstructure:"accountid"`
	AssetID   int `json:"single_asset_id,omitempty" mapstructure:"single_asset_id"`

	Category string `json:"category,omitempty" mapstructure:"category"`
	TaskList string `json:"tasklist,omitempty" mapstructure:"tasklist"`

	ChargeTime string  `json:"chargetime,omitempty" mapstructure:"chargetime"`
	CostNet    float64 `json:"cost_net,omitempty"   mapstructure:"cost_net"`
	CostGross  float64 `json:"cost_gross,omitempty" mapstructure:"cost_gross"`
	VATRate    int     `json:"vat_rate,omitempty"   mapstructure:"vat_rate"`

	LiveChatURL string `json:"livechat_convo_url,omitempty" mapstructure:"livechat_convo_url"`
	FAQRating   int    `json:"cf_faqrating,omitempty"       mapstructure:"cf_faqrating"`

	SendNotification        bool `json:"sendnotification,omitempty"     mapstructure:"sendnotification"`
	SendNotificationContact bool `json:"sendnotificationcont,omitempty" mapstructure:"sendnotificationcont"`
	ReminderOwner           bool `json:"reminder_time,omitempty"        mapstructure:"reminder_time"`
	ReminderContact         bool `json:"reminder_time_cont,omitempty"   mapstructure:"reminder_time_cont"`
	ShowOnPortal            bool `json:"showonportal,omitempty"         mapstructure:"showonportal"`
}
